// Package memory defines the address-bus abstraction the cpu package
// consumes: a total Read/Write interface over a 16-bit address space,
// plus RAM and mirrored-decoding implementations of it.
package memory

import (
	"fmt"
	"math/rand"
	"time"
)

// Bus is the interface a CPU core reads and writes through. Both methods
// are total: reads of unmapped regions return 0 (see Flat64K, which maps
// everything so this never applies directly) and writes to read-only
// regions are silently dropped. No error is ever surfaced to a caller.
type Bus interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM-backed implementations
	// this is simply a no-op without any error.
	Write(addr uint16, val uint8)
	// PowerOn resets the bank to its power-on state. Implementation
	// specific as to whether that's randomized or preset to all zeros.
	PowerOn()
}

// ram implements Bus over a flat byte slice. If the slice is smaller than
// 64KiB, addresses alias (wrap) across it.
type ram struct {
	ram []uint8
}

// NewRAMBank creates a R/W RAM bank of the given size. Size must be a
// power of 2. If this is smaller than 64k (uint16 max) aliasing will occur
// on Read/Write.
func NewRAMBank(size int) (Bus, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid size: %d must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("invalid size: %d is bigger than 64k", size)
	}
	return &ram{ram: make([]uint8, size)}, nil
}

// Read implements Bus. Address is masked to fit the length of the ram buffer.
func (r *ram) Read(addr uint16) uint8 {
	addr &= uint16(len(r.ram) - 1)
	return r.ram[addr]
}

// Write implements Bus. Address is masked to fit the length of the ram buffer.
func (r *ram) Write(addr uint16, val uint8) {
	addr &= uint16(len(r.ram) - 1)
	r.ram[addr] = val
}

// PowerOn implements Bus and randomizes the RAM, matching how real SRAM
// comes up in an indeterminate state.
func (r *ram) PowerOn() {
	rand.Seed(time.Now().UnixNano())
	for i := range r.ram {
		r.ram[i] = uint8(rand.Intn(256))
	}
}

// Flat64K is a full 64KiB RAM bank with no mirroring or read-only regions,
// used for standalone CPU testing and for loading a single program image
// (such as the snake demo) directly at a fixed address.
type Flat64K struct {
	ram [1 << 16]uint8
}

// NewFlat64K returns a zeroed 64KiB RAM bank.
func NewFlat64K() *Flat64K {
	return &Flat64K{}
}

// Read implements Bus.
func (m *Flat64K) Read(addr uint16) uint8 {
	return m.ram[addr]
}

// Write implements Bus.
func (m *Flat64K) Write(addr uint16, val uint8) {
	m.ram[addr] = val
}

// PowerOn implements Bus, randomizing every byte.
func (m *Flat64K) PowerOn() {
	rand.Seed(time.Now().UnixNano())
	for i := range m.ram {
		m.ram[i] = uint8(rand.Intn(256))
	}
}

// Snapshot returns a copy of the full address space, for test inspection
// and deep-equal comparisons.
func (m *Flat64K) Snapshot() [1 << 16]uint8 {
	return m.ram
}

// Load copies data into ram starting at addr, wrapping modulo 64KiB.
func (m *Flat64K) Load(addr uint16, data []uint8) {
	for i, b := range data {
		m.ram[uint16(int(addr)+i)] = b
	}
}
