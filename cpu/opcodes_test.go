package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeTableHasAllOfficialOpcodes(t *testing.T) {
	assert.Len(t, opcodes, 151, "expected exactly 151 defined official opcodes")

	names := make(map[string]bool)
	for _, op := range opcodes {
		assert.NotNil(t, op.exec, "opcode %s has no handler", op.name)
		assert.GreaterOrEqual(t, op.cycles, 2, "opcode %s has implausible base cycle count", op.name)
		names[op.name] = true
	}
	assert.Len(t, names, 56, "expected exactly 56 distinct mnemonics")
}

func TestOpcodeTableExecutesWithoutPanicking(t *testing.T) {
	for b := range opcodes {
		b := b
		t.Run(hexByte(b), func(t *testing.T) {
			r := &flatMemory{fill: 0xEA}
			c := New(r)
			c.PowerOn()
			c.PC = 0x0200
			r.Write(0x0200, b)
			assert.NotPanics(t, func() {
				_, _ = c.Step()
			})
		})
	}
}

func TestUndefinedOpcodeDefaultsToLoggedNOP(t *testing.T) {
	r := &flatMemory{fill: 0xEA}
	c := New(r)
	c.PowerOn()
	c.PC = 0x0200
	r.Write(0x0200, 0x02) // no entry in the table

	n, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, c.Halted())
}

func TestUndefinedOpcodeHaltsUnderPolicyHalt(t *testing.T) {
	r := &flatMemory{fill: 0xEA}
	c := New(r, WithUnofficialPolicy(PolicyHalt))
	c.PowerOn()
	c.PC = 0x0200
	r.Write(0x0200, 0x02)

	_, err := c.Step()
	assert.Error(t, err)
	var haltErr HaltError
	assert.ErrorAs(t, err, &haltErr)
	assert.Equal(t, uint8(0x02), haltErr.Opcode)
	assert.True(t, c.Halted())

	_, err = c.Step()
	assert.Error(t, err)
	var invalidErr InvalidState
	assert.ErrorAs(t, err, &invalidErr)
}
