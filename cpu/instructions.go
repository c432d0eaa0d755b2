package cpu

// Each function below implements one mnemonic (or a small family sharing
// an implementation, e.g. the eight branches) as a pure transformer over
// CPU state plus the already-resolved operand, per spec 4.E and Design
// Notes section 9 ("mnemonic handlers become pure state transformers over
// a resolved operand"). The formulas are ported from the teacher's i*
// methods (iADC, iSBC, iASL, ...) in cpu.go, collapsed from multi-tick
// closures into single calls. Every handler returns the number of cycles
// to add to the opcode's base cost (page-cross and branch-taken
// penalties); most return 0.

// --- Loads/stores (spec 4.E "Loads/stores") ---

func iLDA(c *CPU, op operand) int { c.loadReg(&c.A, op.read(c)); return pageCrossExtra(op) }
func iLDX(c *CPU, op operand) int { c.loadReg(&c.X, op.read(c)); return pageCrossExtra(op) }
func iLDY(c *CPU, op operand) int { c.loadReg(&c.Y, op.read(c)); return pageCrossExtra(op) }

func iSTA(c *CPU, op operand) int { c.bus.Write(op.addr, c.A); return 0 }
func iSTX(c *CPU, op operand) int { c.bus.Write(op.addr, c.X); return 0 }
func iSTY(c *CPU, op operand) int { c.bus.Write(op.addr, c.Y); return 0 }

// pageCrossExtra returns the +1 cycle read-ops incur when indexed
// addressing crossed a page boundary (spec 4.D table); store and RMW
// opcodes never call this since their table entries hard-code the
// worst-case cycle count instead.
func pageCrossExtra(op operand) int {
	if op.pageCrossed {
		return 1
	}
	return 0
}

// loadReg stores val into reg and sets N/Z from it; used directly by
// loads, PLA, the bitwise ops, every transfer except TXS, and the register
// increments/decrements (INX/INY/DEX/DEY).
func (c *CPU) loadReg(reg *uint8, val uint8) {
	*reg = val
	c.P.nzCheck(*reg)
}

// --- Transfers (spec 4.E "Transfers") ---

func iTAX(c *CPU, op operand) int { c.loadReg(&c.X, c.A); return 0 }
func iTAY(c *CPU, op operand) int { c.loadReg(&c.Y, c.A); return 0 }
func iTXA(c *CPU, op operand) int { c.loadReg(&c.A, c.X); return 0 }
func iTYA(c *CPU, op operand) int { c.loadReg(&c.A, c.Y); return 0 }
func iTSX(c *CPU, op operand) int { c.loadReg(&c.X, c.SP); return 0 }
func iTXS(c *CPU, op operand) int { c.SP = c.X; return 0 } // no flags

// --- Stack (spec 4.E "Stack") ---

func iPHA(c *CPU, op operand) int { c.push(c.A); return 0 }
func iPHP(c *CPU, op operand) int { c.push(c.P.PushByte()); return 0 }

func iPLA(c *CPU, op operand) int {
	c.loadReg(&c.A, c.pull())
	return 0
}

func iPLP(c *CPU, op operand) int {
	c.P.SetByte(c.pull())
	return 0
}

// --- Arithmetic (spec 4.E "Arithmetic") ---

func iADC(c *CPU, op operand) int {
	c.adc(op.read(c))
	return pageCrossExtra(op)
}

func iSBC(c *CPU, op operand) int {
	c.sbc(op.read(c))
	return pageCrossExtra(op)
}

// adc implements ADC's binary and (when enabled) decimal-mode math,
// ported from the teacher's Chip.iADC.
func (c *CPU) adc(m uint8) {
	carry := uint8(0)
	if c.P.C() {
		carry = 1
	}

	if c.P.D() && c.decimalEnabled {
		// BCD details: http://6502.org/tutorials/decimal_mode.html
		aL := (c.A & 0x0F) + (m & 0x0F) + carry
		if aL >= 0x0A {
			aL = ((aL + 0x06) & 0x0F) + 0x10
		}
		sum := uint16(c.A&0xF0) + uint16(m&0xF0) + uint16(aL)
		if sum >= 0xA0 {
			sum += 0x60
		}
		res := uint8(sum & 0xFF)
		seq := (c.A & 0xF0) + (m & 0xF0) + aL
		bin := c.A + m + carry
		c.P.overflowCheck(c.A, m, seq)
		c.P.carryCheck(sum)
		c.P.negativeCheck(seq)
		c.P.zeroCheck(bin)
		c.A = res
		return
	}

	sum := c.A + m + carry
	c.P.overflowCheck(c.A, m, sum)
	c.P.carryCheck(uint16(c.A) + uint16(m) + uint16(carry))
	c.loadReg(&c.A, sum)
}

// sbc implements SBC as ADC against the one's complement of m, identical
// to the teacher's Chip.iSBC (including its distinct BCD branch, since
// BCD subtraction isn't simply "ADC with m flipped").
func (c *CPU) sbc(m uint8) {
	if c.P.D() && c.decimalEnabled {
		carry := uint8(0)
		if c.P.C() {
			carry = 1
		}
		aL := int8(c.A&0x0F) - int8(m&0x0F) + int8(carry) - 1
		if aL < 0 {
			aL = ((aL - 0x06) & 0x0F) - 0x10
		}
		sum := int16(c.A&0xF0) - int16(m&0xF0) + int16(aL)
		if sum < 0x0000 {
			sum -= 0x60
		}
		res := uint8(sum & 0xFF)

		b := c.A + ^m + carry
		c.P.overflowCheck(c.A, ^m, b)
		c.P.negativeCheck(b)
		c.P.carryCheck(uint16(c.A) + uint16(^m) + uint16(carry))
		c.P.zeroCheck(b)
		c.A = res
		return
	}
	c.adc(^m)
}

// --- Compares (spec 4.E "Compares") ---

func iCMP(c *CPU, op operand) int { c.compare(c.A, op.read(c)); return pageCrossExtra(op) }
func iCPX(c *CPU, op operand) int { c.compare(c.X, op.read(c)); return 0 }
func iCPY(c *CPU, op operand) int { c.compare(c.Y, op.read(c)); return 0 }

// compare implements CMP/CPX/CPY: reg - m computed with widening so the
// borrow case doesn't underflow, per the teacher's Chip.compare.
func (c *CPU) compare(reg, m uint8) {
	c.P.zeroCheck(reg - m)
	c.P.negativeCheck(reg - m)
	c.P.carryCheck(uint16(reg) + uint16(^m) + 1)
}

// --- Bitwise (spec 4.E "Bitwise") ---

func iAND(c *CPU, op operand) int { c.loadReg(&c.A, c.A&op.read(c)); return pageCrossExtra(op) }
func iORA(c *CPU, op operand) int { c.loadReg(&c.A, c.A|op.read(c)); return pageCrossExtra(op) }
func iEOR(c *CPU, op operand) int { c.loadReg(&c.A, c.A^op.read(c)); return pageCrossExtra(op) }

// --- Shifts/rotates (spec 4.E "Shifts/rotates") ---

func iASL(c *CPU, op operand) int { c.rmw(op, func(v uint8) uint8 {
	c.P.carryCheck(uint16(v) << 1)
	r := v << 1
	c.P.nzCheck(r)
	return r
}); return 0 }

func iLSR(c *CPU, op operand) int { c.rmw(op, func(v uint8) uint8 {
	c.P.SetC(v&0x01 != 0)
	r := v >> 1
	c.P.SetN(false)
	c.P.zeroCheck(r)
	return r
}); return 0 }

func iROL(c *CPU, op operand) int { c.rmw(op, func(v uint8) uint8 {
	carry := uint8(0)
	if c.P.C() {
		carry = 1
	}
	c.P.carryCheck(uint16(v) << 1)
	r := (v << 1) | carry
	c.P.nzCheck(r)
	return r
}); return 0 }

func iROR(c *CPU, op operand) int { c.rmw(op, func(v uint8) uint8 {
	carry := uint8(0)
	if c.P.C() {
		carry = 0x80
	}
	c.P.SetC(v&0x01 != 0)
	r := (v >> 1) | carry
	c.P.nzCheck(r)
	return r
}); return 0 }

// rmw applies f to the operand's current value (accumulator or memory)
// and writes the result back, matching the teacher's shared RMW shape for
// ASL/LSR/ROL/ROR/INC/DEC across both accumulator and memory addressing.
func (c *CPU) rmw(op operand, f func(uint8) uint8) {
	if op.mode == ModeAccumulator {
		c.A = f(c.A)
		return
	}
	v := c.bus.Read(op.addr)
	c.bus.Write(op.addr, f(v))
}

// --- Increments/decrements (spec 4.E "Increments/decrements") ---

func iINC(c *CPU, op operand) int {
	c.rmw(op, func(v uint8) uint8 { r := v + 1; c.P.nzCheck(r); return r })
	return 0
}
func iDEC(c *CPU, op operand) int {
	c.rmw(op, func(v uint8) uint8 { r := v - 1; c.P.nzCheck(r); return r })
	return 0
}
func iINX(c *CPU, op operand) int { c.loadReg(&c.X, c.X+1); return 0 }
func iINY(c *CPU, op operand) int { c.loadReg(&c.Y, c.Y+1); return 0 }
func iDEX(c *CPU, op operand) int { c.loadReg(&c.X, c.X-1); return 0 }
func iDEY(c *CPU, op operand) int { c.loadReg(&c.Y, c.Y-1); return 0 }

// --- BIT (spec 4.E "BIT") ---

func iBIT(c *CPU, op operand) int {
	m := op.read(c)
	c.P.zeroCheck(c.A & m)
	c.P.SetN(m&P_NEGATIVE != 0)
	c.P.SetV(m&P_OVERFLOW != 0)
	return 0
}

// --- Flag ops (spec 4.E "Flag ops") ---

func iCLC(c *CPU, op operand) int { c.P.SetC(false); return 0 }
func iSEC(c *CPU, op operand) int { c.P.SetC(true); return 0 }
func iCLI(c *CPU, op operand) int { c.P.SetI(false); return 0 }
func iSEI(c *CPU, op operand) int { c.P.SetI(true); return 0 }
func iCLD(c *CPU, op operand) int { c.P.SetD(false); return 0 }
func iSED(c *CPU, op operand) int { c.P.SetD(true); return 0 }
func iCLV(c *CPU, op operand) int { c.P.SetV(false); return 0 }

// --- Control flow (spec 4.E "Control flow") ---

func iJMP(c *CPU, op operand) int { c.PC = op.addr; return 0 }

func iJSR(c *CPU, op operand) int {
	// Push (PC - 1), where PC has already advanced past the 2-byte
	// operand: the net effect is the return address pushed points at
	// JSR's last operand byte, so RTS's +1 lands on the next instruction.
	ret := c.PC - 1
	c.push(uint8(ret >> 8))
	c.push(uint8(ret & 0xFF))
	c.PC = op.addr
	return 0
}

func iRTS(c *CPU, op operand) int {
	lo := c.pull()
	hi := c.pull()
	c.PC = (uint16(hi)<<8 | uint16(lo)) + 1
	return 0
}

func iRTI(c *CPU, op operand) int {
	c.P.SetByte(c.pull())
	lo := c.pull()
	hi := c.pull()
	c.PC = uint16(hi)<<8 | uint16(lo)
	return 0
}

// branch implements the shared timing/displacement logic for all eight
// conditional branches: base 2 cycles, +1 if taken, +1 more if the taken
// target crosses a page, per spec 4.D's Relative mode row.
func (c *CPU) branch(taken bool, op operand) int {
	if !taken {
		return 0
	}
	old := c.PC
	target := old + uint16(int16(int8(op.value)))
	c.PC = target
	if old&0xFF00 != target&0xFF00 {
		return 2
	}
	return 1
}

func iBCC(c *CPU, op operand) int { return c.branch(!c.P.C(), op) }
func iBCS(c *CPU, op operand) int { return c.branch(c.P.C(), op) }
func iBEQ(c *CPU, op operand) int { return c.branch(c.P.Z(), op) }
func iBNE(c *CPU, op operand) int { return c.branch(!c.P.Z(), op) }
func iBMI(c *CPU, op operand) int { return c.branch(c.P.N(), op) }
func iBPL(c *CPU, op operand) int { return c.branch(!c.P.N(), op) }
func iBVS(c *CPU, op operand) int { return c.branch(c.P.V(), op) }
func iBVC(c *CPU, op operand) int { return c.branch(!c.P.V(), op) }

// --- Interrupt-class (spec 4.E "Interrupt-class") ---

func iBRK(c *CPU, op operand) int {
	c.PC++ // past the second, unused byte
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC & 0xFF))
	c.push(c.P.PushByte())
	c.P.SetI(true)
	c.PC = uint16(c.bus.Read(vectorIRQ)) | uint16(c.bus.Read(vectorIRQ+1))<<8
	return 0
}

func iNOP(c *CPU, op operand) int { return 0 }
