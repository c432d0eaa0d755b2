package cpu

import "fmt"

// Cycles reports the total number of cycles counted since the CPU was
// constructed: everything Step has consumed plus 7 for each Reset. Reset
// does not zero it. For callers that want to report progress or budget runs.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Halted reports whether Step has returned a HaltError and is now
// refusing further calls until the next Reset.
func (c *CPU) Halted() bool { return c.halted }

// HaltOpcode returns the undefined opcode byte that tripped PolicyHalt.
// Only meaningful when Halted reports true.
func (c *CPU) HaltOpcode() uint8 { return c.haltOpcode }

// String renders the architectural register state plus run counters, the
// compact line shape logUndefinedOpcode uses instead of a full spew.Sdump.
func (c *CPU) String() string {
	return fmt.Sprintf("PC=0x%04X A=%s X=%s Y=%s SP=%s P=%s cycles=%d halted=%v",
		c.PC, hexByte(c.A), hexByte(c.X), hexByte(c.Y), hexByte(c.SP),
		hexByte(c.P.Byte()), c.cycles, c.halted)
}
