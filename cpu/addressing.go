package cpu

// Mode enumerates the thirteen 6502 addressing modes (spec 4.D). Each
// opcode table entry names exactly one of these; resolveOperand is the
// single function that interprets it, replacing the teacher's one
// multi-tick function per mode with one pure resolution per mode tag
// (spec Design Notes section 9).
type Mode int

const (
	ModeImplied Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeRelative
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
)

// operand is what the addressing evaluator hands to an instruction
// handler: either an immediate/relative value, an effective address to
// read/write through, or neither (implied/accumulator).
type operand struct {
	mode        Mode
	value       uint8  // immediate byte, or relative displacement
	addr        uint16 // effective address, meaningful for memory-referencing modes
	pageCrossed bool   // true if indexing changed the high byte of the address
}

// read returns the operand's value, fetching from memory through addr
// when the mode isn't immediate/relative/accumulator/implied.
func (o operand) read(c *CPU) uint8 {
	switch o.mode {
	case ModeImmediate, ModeRelative:
		return o.value
	case ModeAccumulator:
		return c.A
	case ModeImplied:
		return 0
	default:
		return c.bus.Read(o.addr)
	}
}

// resolveOperand implements spec 4.D: given the mode tag from the opcode
// table, consume whatever operand bytes that mode requires (advancing PC
// past them), and return the resolved address/value/page-cross result.
// Called once per instruction, after the opcode byte itself has already
// been fetched and PC advanced past it.
func (c *CPU) resolveOperand(mode Mode) operand {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return operand{mode: mode}

	case ModeImmediate:
		v := c.bus.Read(c.PC)
		c.PC++
		return operand{mode: mode, value: v}

	case ModeRelative:
		v := c.bus.Read(c.PC)
		c.PC++
		return operand{mode: mode, value: v}

	case ModeZeroPage:
		addr := uint16(c.bus.Read(c.PC))
		c.PC++
		return operand{mode: mode, addr: addr}

	case ModeZeroPageX:
		base := c.bus.Read(c.PC)
		c.PC++
		addr := uint16(base + c.X) // 8-bit wrap is mandatory here
		return operand{mode: mode, addr: addr}

	case ModeZeroPageY:
		base := c.bus.Read(c.PC)
		c.PC++
		addr := uint16(base + c.Y)
		return operand{mode: mode, addr: addr}

	case ModeAbsolute:
		lo := c.bus.Read(c.PC)
		c.PC++
		hi := c.bus.Read(c.PC)
		c.PC++
		addr := uint16(lo) | uint16(hi)<<8
		return operand{mode: mode, addr: addr}

	case ModeAbsoluteX:
		return c.resolveAbsoluteIndexed(mode, c.X)

	case ModeAbsoluteY:
		return c.resolveAbsoluteIndexed(mode, c.Y)

	case ModeIndirect:
		lo := c.bus.Read(c.PC)
		c.PC++
		hi := c.bus.Read(c.PC)
		c.PC++
		ptr := uint16(lo) | uint16(hi)<<8
		// Reproduces the 6502 JMP (ind) page-boundary bug: the high byte
		// of the target is fetched without carry from the low byte, so
		// JMP ($30FF) reads its high byte from $3000, not $3100.
		hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
		addrLo := c.bus.Read(ptr)
		addrHi := c.bus.Read(hiAddr)
		addr := uint16(addrLo) | uint16(addrHi)<<8
		return operand{mode: mode, addr: addr}

	case ModeIndirectX:
		zp := c.bus.Read(c.PC)
		c.PC++
		base := zp + c.X // 8-bit wrap on pointer fetch
		lo := c.bus.Read(uint16(base))
		hi := c.bus.Read(uint16(base + 1))
		addr := uint16(lo) | uint16(hi)<<8
		return operand{mode: mode, addr: addr}

	case ModeIndirectY:
		zp := c.bus.Read(c.PC)
		c.PC++
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16(zp + 1))
		base := uint16(lo) | uint16(hi)<<8
		addr := base + uint16(c.Y)
		return operand{mode: mode, addr: addr, pageCrossed: (base & 0xFF00) != (addr & 0xFF00)}

	default:
		panic("resolveOperand: unhandled mode")
	}
}

// resolveAbsoluteIndexed implements Absolute,X and Absolute,Y, which
// differ only in which register indexes the base address.
func (c *CPU) resolveAbsoluteIndexed(mode Mode, reg uint8) operand {
	lo := c.bus.Read(c.PC)
	c.PC++
	hi := c.bus.Read(c.PC)
	c.PC++
	base := uint16(lo) | uint16(hi)<<8
	addr := base + uint16(reg)
	return operand{mode: mode, addr: addr, pageCrossed: (base & 0xFF00) != (addr & 0xFF00)}
}
