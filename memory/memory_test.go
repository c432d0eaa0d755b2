package memory

import "testing"

func TestNewRAMBankRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := NewRAMBank(100); err == nil {
		t.Fatal("expected error for non-power-of-2 size")
	}
	if _, err := NewRAMBank(1 << 17); err == nil {
		t.Fatal("expected error for size larger than 64KiB")
	}
}

func TestRAMBankReadWrite(t *testing.T) {
	b, err := NewRAMBank(0x0800)
	if err != nil {
		t.Fatalf("NewRAMBank: %v", err)
	}
	b.Write(0x0010, 0x42)
	if got := b.Read(0x0010); got != 0x42 {
		t.Errorf("Read(0x0010) = 0x%02X, want 0x42", got)
	}
	// Address beyond the bank's size aliases back into it.
	b.Write(0x0800+0x0010, 0x99)
	if got := b.Read(0x0010); got != 0x99 {
		t.Errorf("aliased write not observed: Read(0x0010) = 0x%02X, want 0x99", got)
	}
}

func TestFlat64KLoadAndSnapshot(t *testing.T) {
	m := NewFlat64K()
	m.Load(0x0600, []uint8{0xA9, 0x01, 0x60})
	if got := m.Read(0x0601); got != 0x01 {
		t.Errorf("Read(0x0601) = 0x%02X, want 0x01", got)
	}
	snap := m.Snapshot()
	if snap[0x0600] != 0xA9 {
		t.Errorf("Snapshot()[0x0600] = 0x%02X, want 0xA9", snap[0x0600])
	}
}

func TestMirroredLowRAM(t *testing.T) {
	under := NewFlat64K()
	m := NewMirrored(under)

	m.Write(0x0001, 0x55)
	for _, mirror := range []uint16{0x0001, 0x0801, 0x1001, 0x1801} {
		if got := m.Read(mirror); got != 0x55 {
			t.Errorf("Read(0x%04X) = 0x%02X, want 0x55 (mirror of $0001)", mirror, got)
		}
	}
}

func TestMirroredRegisterWindow(t *testing.T) {
	under := NewFlat64K()
	m := NewMirrored(under)

	m.Write(0x2003, 0x7E)
	for base := uint16(0x2000); base < 0x4000; base += regsSize {
		mirror := base + 3
		if got := m.Read(mirror); got != 0x7E {
			t.Errorf("Read(0x%04X) = 0x%02X, want 0x7E (mirror of $2003)", mirror, got)
		}
	}
}

func TestMirroredPassesThroughHighMemory(t *testing.T) {
	under := NewFlat64K()
	m := NewMirrored(under)

	m.Write(0xFFFC, 0x00)
	m.Write(0xFFFD, 0x80)
	if got := m.Read(0xFFFC); got != 0x00 || m.Read(0xFFFD) != 0x80 {
		t.Errorf("reset vector not passed through unmirrored: got (0x%02X, 0x%02X)", m.Read(0xFFFC), m.Read(0xFFFD))
	}
}
