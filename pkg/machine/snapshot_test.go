package machine

import (
	"path/filepath"
	"testing"

	"github.com/oisee/rv32emu/pkg/rv32"
)

func TestSnapshotRoundTrip(t *testing.T) {
	m := newTestMachine(t, Config{MemSize: 1024, SDImage: sdImage()})
	cpu := rv32.NewCPU(m, 0x40)

	s := cpu.State()
	s.Regs[5] = 0xCAFE
	cpu.Restore(s)
	store(t, m, 0x100, rv32.Word, 0x12345678)
	store(t, m, SDCardReadSector, rv32.Word, 3)
	load(t, m, SDCardNextByte, rv32.Word) // advance the buffer index

	path := filepath.Join(t.TempDir(), "state.gob")
	if err := SaveSnapshot(path, m.Snapshot(cpu)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	m2 := newTestMachine(t, Config{MemSize: 1024})
	cpu2 := rv32.NewCPU(m2, 0)
	m2.Apply(snap, cpu2)

	if cpu2.PC() != 0x40 {
		t.Errorf("pc = %#x, want 0x40", cpu2.PC())
	}
	if got := uint32(cpu2.Reg(5)); got != 0xCAFE {
		t.Errorf("x5 = %#x, want 0xCAFE", got)
	}
	if got := load(t, m2, 0x100, rv32.Word); got != 0x12345678 {
		t.Errorf("RAM word = %#x, want 0x12345678", got)
	}
	// Buffer index carried over: next byte is byte 1 of sector 3.
	if got := load(t, m2, SDCardNextByte, rv32.Word); got != 4 {
		t.Errorf("next byte = %d, want 4", got)
	}
	if got := m2.SDCard().Sectors(); got != 4 {
		t.Errorf("sectors = %d, want 4", got)
	}
}
