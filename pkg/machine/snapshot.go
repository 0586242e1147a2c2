package machine

import (
	"encoding/gob"
	"os"

	"github.com/oisee/rv32emu/pkg/rv32"
)

// Snapshot is a resumable image of a running machine: the CPU's
// architectural state plus everything the bus owns.
type Snapshot struct {
	CPU     rv32.State
	RAM     []byte
	SDBuf   [SectorSize]byte
	SDIdx   int
	SDImage []byte
}

// Snapshot captures the machine and CPU state.
func (m *Machine) Snapshot(cpu *rv32.CPU) *Snapshot {
	s := &Snapshot{
		CPU:   cpu.State(),
		RAM:   append([]byte(nil), m.ram...),
		SDBuf: m.sd.buf,
		SDIdx: m.sd.idx,
	}
	if m.sd.image != nil {
		s.SDImage = append([]byte(nil), m.sd.image...)
	}
	return s
}

// Apply restores a snapshot into the machine and CPU. The snapshot's
// RAM size wins over whatever the machine was built with.
func (m *Machine) Apply(s *Snapshot, cpu *rv32.CPU) {
	m.ram = append([]byte(nil), s.RAM...)
	m.sd.buf = s.SDBuf
	m.sd.idx = s.SDIdx
	if s.SDImage != nil {
		m.sd.image = append([]byte(nil), s.SDImage...)
	}
	cpu.Restore(s.CPU)
}

// SaveSnapshot writes a snapshot to a file.
func SaveSnapshot(path string, s *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(s)
}

// LoadSnapshot reads a snapshot from a file.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
