// Package disassemble renders 6502 machine code as assembly mnemonics,
// driven off the same opcode table the execution engine uses rather than
// a second, independently maintained switch over byte values.
package disassemble

import (
	"fmt"

	"github.com/mattrco/mos6502/cpu"
	"github.com/mattrco/mos6502/memory"
)

// operandLen returns how many bytes after the opcode byte itself belong
// to the instruction's operand, per mode.
func operandLen(mode cpu.Mode) int {
	switch mode {
	case cpu.ModeImplied, cpu.ModeAccumulator:
		return 0
	case cpu.ModeImmediate, cpu.ModeRelative,
		cpu.ModeZeroPage, cpu.ModeZeroPageX, cpu.ModeZeroPageY,
		cpu.ModeIndirectX, cpu.ModeIndirectY:
		return 1
	default:
		return 2
	}
}

// Step disassembles the instruction at pc, returning its mnemonic text and
// the number of bytes (including the opcode byte) it occupies. An
// undefined opcode byte disassembles as ".byte $xx". This does not follow
// control flow: a JMP target is printed as an address, not dereferenced.
func Step(pc uint16, bus memory.Bus) (string, int) {
	b := bus.Read(pc)
	op, ok := cpu.Opcode(b)
	if !ok {
		return fmt.Sprintf(".byte $%02X", b), 1
	}

	n := operandLen(op.Mode)
	var arg1, arg2 uint8
	if n >= 1 {
		arg1 = bus.Read(pc + 1)
	}
	if n >= 2 {
		arg2 = bus.Read(pc + 2)
	}

	switch op.Mode {
	case cpu.ModeImplied:
		return op.Name, 1
	case cpu.ModeAccumulator:
		return op.Name + " A", 1
	case cpu.ModeImmediate:
		return fmt.Sprintf("%s #$%02X", op.Name, arg1), 2
	case cpu.ModeRelative:
		target := pc + 2 + uint16(int16(int8(arg1)))
		return fmt.Sprintf("%s $%04X", op.Name, target), 2
	case cpu.ModeZeroPage:
		return fmt.Sprintf("%s $%02X", op.Name, arg1), 2
	case cpu.ModeZeroPageX:
		return fmt.Sprintf("%s $%02X,X", op.Name, arg1), 2
	case cpu.ModeZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", op.Name, arg1), 2
	case cpu.ModeIndirectX:
		return fmt.Sprintf("%s ($%02X,X)", op.Name, arg1), 2
	case cpu.ModeIndirectY:
		return fmt.Sprintf("%s ($%02X),Y", op.Name, arg1), 2
	case cpu.ModeAbsolute:
		return fmt.Sprintf("%s $%02X%02X", op.Name, arg2, arg1), 3
	case cpu.ModeAbsoluteX:
		return fmt.Sprintf("%s $%02X%02X,X", op.Name, arg2, arg1), 3
	case cpu.ModeAbsoluteY:
		return fmt.Sprintf("%s $%02X%02X,Y", op.Name, arg2, arg1), 3
	case cpu.ModeIndirect:
		return fmt.Sprintf("%s ($%02X%02X)", op.Name, arg2, arg1), 3
	default:
		return fmt.Sprintf(".byte $%02X", b), 1
	}
}
