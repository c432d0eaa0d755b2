// Package cpu implements a cycle-accurate MOS 6502 instruction core: the
// registers, status flags, addressing modes, and instruction semantics of
// the NMOS 6502 and its Ricoh variant (no decimal mode), driven one whole
// instruction at a time through Step.
package cpu

import (
	"github.com/mattrco/mos6502/irq"
	"github.com/mattrco/mos6502/memory"
)

// Vector addresses the chip reads on reset and on each interrupt class,
// named the way the teacher names them (NMI_VECTOR, RESET_VECTOR,
// IRQ_VECTOR in cpu.go), lower-cased to fit unexported package constants.
const (
	vectorNMI   uint16 = 0xFFFA
	vectorReset uint16 = 0xFFFC
	vectorIRQ   uint16 = 0xFFFE
)

// Variant selects which chip family's instruction quirks apply. The only
// behavioral difference modeled is decimal-mode arithmetic: NMOSRicoh (the
// 2A03/2A07 used in the NES) wires the ADC/SBC BCD logic out entirely.
type Variant int

const (
	NMOS Variant = iota
	NMOSRicoh
)

// UnofficialPolicy controls what happens when Step fetches a byte with no
// entry in the opcode table.
type UnofficialPolicy int

const (
	// PolicyNOP treats an undefined opcode as a 2-cycle no-op, logging the
	// byte value once per distinct value the first time it's encountered.
	PolicyNOP UnofficialPolicy = iota
	// PolicyHalt returns a HaltError from Step instead of proceeding.
	PolicyHalt
)

// InvalidState reports caller misuse of the engine, such as calling Step
// after Step has already returned a HaltError, mirroring the teacher's
// InvalidCPUState.
type InvalidState struct {
	Reason string
}

func (e InvalidState) Error() string { return "cpu: invalid state: " + e.Reason }

// HaltError reports that Step fetched an undefined opcode while running
// under PolicyHalt, mirroring the teacher's HaltOpcode.
type HaltError struct {
	Opcode uint8
}

func (e HaltError) Error() string {
	return "cpu: halted on undefined opcode " + hexByte(e.Opcode)
}

// CPU holds the complete architectural and interrupt-pending state of one
// 6502 core. The zero value is not usable; construct with New.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       Status

	bus memory.Bus

	irqSource irq.Sender
	nmiSource irq.Sender

	variant        Variant
	decimalEnabled bool
	unofficial     UnofficialPolicy

	cycles uint64

	pendingIRQ bool
	pendingNMI bool

	halted     bool
	haltOpcode uint8

	loggedUndefined map[uint8]bool
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithVariant selects the chip variant (default NMOS).
func WithVariant(v Variant) Option {
	return func(c *CPU) {
		c.variant = v
		c.decimalEnabled = v != NMOSRicoh
	}
}

// WithUnofficialPolicy selects how undefined opcodes are handled (default
// PolicyNOP).
func WithUnofficialPolicy(p UnofficialPolicy) Option {
	return func(c *CPU) { c.unofficial = p }
}

// WithIRQSource wires an external edge/level source that Step polls each
// call, as an alternative (or addition) to explicit IRQ() calls — for a
// peripheral that raises its own interrupt line rather than one driven
// directly by the embedding program.
func WithIRQSource(s irq.Sender) Option {
	return func(c *CPU) { c.irqSource = s }
}

// WithNMISource is WithIRQSource's non-maskable counterpart.
func WithNMISource(s irq.Sender) Option {
	return func(c *CPU) { c.nmiSource = s }
}

// New constructs a CPU wired to bus. The CPU does not call PowerOn or
// Reset; callers decide when to do so.
func New(bus memory.Bus, opts ...Option) *CPU {
	c := &CPU{
		bus:             bus,
		decimalEnabled:  true,
		loggedUndefined: make(map[uint8]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PowerOn randomizes the bus and puts the CPU into the same state Reset
// does, matching the teacher's Chip.PowerOn behavior of randomizing RAM
// then performing a reset sequence.
func (c *CPU) PowerOn() {
	c.bus.PowerOn()
	c.Reset()
}

// Reset reinitializes PC from the reset vector, sets SP to 0xFD, sets the
// interrupt-disable flag, and clears pending-interrupt and halt state. On
// real hardware this costs 7 cycles; the running total reported by Cycles
// reflects that here too.
func (c *CPU) Reset() {
	lo := c.bus.Read(vectorReset)
	hi := c.bus.Read(vectorReset + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.SP = 0xFD
	c.P.SetByte(0)
	c.P.SetI(true)
	c.pendingIRQ = false
	c.pendingNMI = false
	c.halted = false
	c.cycles += 7
}

// IRQ raises a pending maskable interrupt, serviced before the next
// instruction fetch unless the interrupt-disable flag is set.
func (c *CPU) IRQ() { c.pendingIRQ = true }

// NMI raises a pending non-maskable interrupt. NMI always wins over a
// simultaneously pending IRQ and is never masked by the I flag.
func (c *CPU) NMI() { c.pendingNMI = true }

// push writes val to the stack page (0x0100-0x01FF) and decrements SP,
// wrapping within the page exactly as the real chip's single-byte stack
// pointer does.
func (c *CPU) push(val uint8) {
	c.bus.Write(0x0100+uint16(c.SP), val)
	c.SP--
}

// pull increments SP and reads the stack page, the inverse of push.
func (c *CPU) pull() uint8 {
	c.SP++
	return c.bus.Read(0x0100 + uint16(c.SP))
}

// Step fetches, decodes, and fully executes exactly one instruction
// (servicing any pending interrupt first), returning the number of cycles
// it consumed. It is the engine's sole execution entry point, replacing
// the teacher's resumable per-tick Tick/TickDone pair with a single call
// per instruction.
func (c *CPU) Step() (int, error) {
	if c.halted {
		return 0, InvalidState{Reason: "Step called after halt"}
	}

	if c.nmiSource != nil && c.nmiSource.Raised() {
		c.pendingNMI = true
	}
	if c.irqSource != nil && c.irqSource.Raised() {
		c.pendingIRQ = true
	}

	if c.pendingNMI {
		c.pendingNMI = false
		c.serviceInterrupt(vectorNMI)
		return 7, nil
	}
	if c.pendingIRQ && !c.P.I() {
		// BRK wins a coincident IRQ: peek at the next opcode rather than
		// service the line blind. If PC is sitting on a BRK, let it execute
		// normally this Step (it frames and vectors the interrupt itself)
		// and drop the now-redundant pending IRQ instead of firing twice.
		c.pendingIRQ = false
		if next, ok := opcodes[c.bus.Read(c.PC)]; !ok || next.name != "BRK" {
			c.serviceInterrupt(vectorIRQ)
			return 7, nil
		}
	}

	opcodeByte := c.bus.Read(c.PC)
	c.PC++

	op, ok := opcodes[opcodeByte]
	if !ok {
		return c.stepUndefined(opcodeByte)
	}

	resolved := c.resolveOperand(op.mode)
	extra := op.exec(c, resolved)

	total := op.cycles
	if op.pageCrossPenalty || op.mode == ModeRelative {
		total += extra
	}

	c.cycles += uint64(total)
	return total, nil
}

// stepUndefined implements the two undefined-opcode policies.
func (c *CPU) stepUndefined(opcodeByte uint8) (int, error) {
	if c.unofficial == PolicyHalt {
		c.halted = true
		c.haltOpcode = opcodeByte
		return 0, HaltError{Opcode: opcodeByte}
	}
	if !c.loggedUndefined[opcodeByte] {
		c.loggedUndefined[opcodeByte] = true
		logUndefinedOpcode(c, opcodeByte)
	}
	c.cycles += 2
	return 2, nil
}

// serviceInterrupt pushes PC and P (with B clear) and jumps through the
// given vector, the shared shape of NMI/IRQ framing. BRK does not come
// through here: iBRK frames itself the same way but pushes P with B set.
func (c *CPU) serviceInterrupt(vector uint16) {
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC & 0xFF))
	c.push(c.P.InterruptPushByte())
	c.P.SetI(true)
	lo := c.bus.Read(vector)
	hi := c.bus.Read(vector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.cycles += 7
}

// Run executes instructions until at least maxCycles have elapsed or an
// error (including a halt) is returned by Step.
func (c *CPU) Run(maxCycles int) error {
	spent := 0
	for spent < maxCycles {
		n, err := c.Step()
		if err != nil {
			return err
		}
		spent += n
	}
	return nil
}

// RunUntil steps the CPU until pred reports true or Step returns an error.
func (c *CPU) RunUntil(pred func(*CPU) bool) error {
	for !pred(c) {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

func hexByte(b uint8) string {
	const digits = "0123456789ABCDEF"
	return "0x" + string(digits[b>>4]) + string(digits[b&0x0F])
}
