package cpu

import "log"

// logUndefinedOpcode reports a byte value with no opcode table entry the
// first time Step encounters it under PolicyNOP. Uses the stdlib logger
// directly, the same choice the teacher makes everywhere else in this
// codebase rather than reaching for a third-party logging facade. Takes
// the CPU so the line carries PC and register context via String();
// cpu can't import the disassemble package for a mnemonic lookup here,
// since disassemble itself imports cpu.
func logUndefinedOpcode(c *CPU, b uint8) {
	log.Printf("cpu: undefined opcode %s executed as NOP (%s)", hexByte(b), c)
}
