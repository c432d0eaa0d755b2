package cpu

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
)

const testDir = "../testdata"

// flatMemory is a 64KiB RAM bus with fixed reset/IRQ/NMI vectors, used the
// same way the teacher's flatMemory fixture is in cpu_test.go: fill the
// image with a known byte pattern, lay a short program over the top, and
// step the CPU through it.
type flatMemory struct {
	addr [65536]uint8
	fill uint8
}

func (r *flatMemory) Read(addr uint16) uint8       { return r.addr[addr] }
func (r *flatMemory) Write(addr uint16, val uint8) { r.addr[addr] = val }

const (
	resetVec = uint16(0x1FFE)
	irqVec   = uint16(0xD001)
	nmiVec   = uint16(0xE001)
)

func (r *flatMemory) PowerOn() {
	for i := range r.addr {
		r.addr[i] = r.fill
	}
	r.addr[vectorReset] = uint8(resetVec & 0xFF)
	r.addr[vectorReset+1] = uint8(resetVec >> 8)
	r.addr[vectorIRQ] = uint8(irqVec & 0xFF)
	r.addr[vectorIRQ+1] = uint8(irqVec >> 8)
	r.addr[vectorNMI] = uint8(nmiVec & 0xFF)
	r.addr[vectorNMI+1] = uint8(nmiVec >> 8)
}

// setup returns a freshly powered-on CPU backed by a flatMemory bus filled
// with NOPs, with PC overridden to start at org and program written there.
func setup(t *testing.T, org uint16, program []uint8) (*CPU, *flatMemory) {
	t.Helper()
	r := &flatMemory{fill: 0xEA}
	c := New(r)
	c.PowerOn()
	for i, b := range program {
		r.Write(org+uint16(i), b)
	}
	c.PC = org
	return c, r
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	tests := []struct {
		name     string
		val      uint8
		wantZero bool
		wantNeg  bool
	}{
		{"positive", 0x42, false, false},
		{"zero", 0x00, true, false},
		{"negative", 0x80, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := setup(t, 0x0200, []uint8{0xA9, tc.val})
			n, err := c.Step()
			assert.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, tc.val, c.A, spew.Sdump(c))
			assert.Equal(t, tc.wantZero, c.P.Z())
			assert.Equal(t, tc.wantNeg, c.P.N())
		})
	}
}

func TestJMPIndirectPageBoundaryBug(t *testing.T) {
	c, r := setup(t, 0x4000, []uint8{0x6C, 0xFF, 0x30}) // JMP ($30FF)
	r.Write(0x30FF, 0x80)
	r.Write(0x3000, 0x40) // high byte fetched WITHOUT carry, from $3000 not $3100
	r.Write(0x3100, 0x00) // if the bug weren't reproduced, this byte would be used instead

	n, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, uint16(0x4080), c.PC)
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, r := setup(t, 0x0600, []uint8{0x20, 0x00, 0x07}) // JSR $0700
	r.Write(0x0700, 0x60)                               // RTS
	startSP := c.SP

	n, err := c.Step() // JSR
	assert.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, uint16(0x0700), c.PC)
	assert.Equal(t, startSP-2, c.SP)
	assert.Equal(t, uint8(0x02), r.Read(0x0100+uint16(c.SP)+1)) // low byte of $0602 (PC-1)
	assert.Equal(t, uint8(0x06), r.Read(0x0100+uint16(c.SP)+2)) // high byte

	n, err = c.Step() // RTS
	assert.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, uint16(0x0603), c.PC)
	assert.Equal(t, startSP, c.SP)
}

func TestADCOverflow(t *testing.T) {
	c, _ := setup(t, 0x0200, []uint8{0x69, 0x50}) // ADC #$50
	c.A = 0x50
	c.P.SetC(false)

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xA0), c.A)
	assert.True(t, c.P.N())
	assert.True(t, c.P.V())
	assert.False(t, c.P.C())
	assert.False(t, c.P.Z())
}

func TestBranchPageCrossCost(t *testing.T) {
	c, _ := setup(t, 0x00F0, []uint8{0xB0, 0x0F}) // BCS $0101 (offset +$0F from $00F2), crosses from page 0 to page 1
	c.P.SetC(true)

	n, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0101), c.PC)
	assert.Equal(t, 4, n)
}

func TestSnakeDemoRunsWithoutHalting(t *testing.T) {
	data := loadHexFixture(t, filepath.Join(testDir, "snake.hex"))
	r := &flatMemory{fill: 0xEA}
	c := New(r, WithUnofficialPolicy(PolicyHalt))
	c.PowerOn()
	for addr, b := range data {
		r.Write(addr, b)
	}
	c.PC = 0x0600

	const programLo, programHi = 0x0600, 0x0800
	const screenPage = 0x0200
	for instructions := 0; instructions < 100000; instructions++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step failed after %d instructions: %v\nstate: %s", instructions, err, spew.Sdump(c))
		}
	}

	assert.GreaterOrEqualf(t, c.PC, uint16(programLo), "final PC 0x%04X left the program region", c.PC)
	assert.Lessf(t, c.PC, uint16(programHi), "final PC 0x%04X left the program region", c.PC)

	wrote := false
	for a := screenPage; a < screenPage+0x100; a++ {
		if r.Read(uint16(a)) != 0xEA {
			wrote = true
			break
		}
	}
	assert.True(t, wrote, "expected the pixel buffer at page 0x02 to have been written")
}

func TestResetVectorsPC(t *testing.T) {
	r := &flatMemory{fill: 0xEA}
	c := New(r)
	c.PowerOn()
	assert.Equal(t, resetVec, c.PC)
	assert.Equal(t, uint8(0xFD), c.SP)
	assert.True(t, c.P.I())

	if diff := deep.Equal(resetVec, c.PC); diff != nil {
		t.Errorf("PC mismatch after reset: %v", diff)
	}
}

// loadHexFixture parses the "AAAA: bb bb bb ..." format used by
// testdata/snake.hex into a sparse address->byte map.
func loadHexFixture(t *testing.T, path string) map[uint16]uint8 {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer f.Close()

	out := make(map[uint16]uint8)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			t.Fatalf("malformed fixture line: %q", line)
		}
		base, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 16, 16)
		if err != nil {
			t.Fatalf("parsing address in %q: %v", line, err)
		}
		for i, tok := range strings.Fields(parts[1]) {
			b, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				t.Fatalf("parsing byte in %q: %v", line, err)
			}
			out[uint16(base)+uint16(i)] = uint8(b)
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanning fixture: %v", err)
	}
	return out
}
