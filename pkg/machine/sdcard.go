package machine

import "github.com/oisee/rv32emu/pkg/rv32"

// SectorSize is the SD-card transfer unit in bytes.
const SectorSize = 512

// sdStatusValue is what SDCARD_STATUS reads back. Host-defined; this is
// the value the FPGA-facing emulator reports.
const sdStatusValue = 6

// SDCard is a block device with a single sector buffer. Firmware moves
// data one byte at a time through SDCARD_NEXT_BYTE; the buffer index
// post-increments modulo the sector size on every access.
type SDCard struct {
	image []byte
	buf   [SectorSize]byte
	idx   int
	dirty bool
}

// NewSDCard wraps a backing image. A nil image is a zero-sector card:
// every transfer request fails with ErrBadSector.
func NewSDCard(image []byte) *SDCard {
	return &SDCard{image: image}
}

// Sectors returns the number of full sectors in the backing image.
func (sd *SDCard) Sectors() uint32 {
	return uint32(len(sd.image) / SectorSize)
}

// Dirty reports whether a sector has been written back to the image.
func (sd *SDCard) Dirty() bool { return sd.dirty }

// Image returns the backing image.
func (sd *SDCard) Image() []byte { return sd.image }

// ReadSector loads sector n into the buffer and resets the index.
func (sd *SDCard) ReadSector(n uint32) error {
	if n >= sd.Sectors() {
		return &rv32.BusError{Code: ErrBadSector}
	}
	copy(sd.buf[:], sd.image[n*SectorSize:])
	sd.idx = 0
	return nil
}

// WriteSector flushes the buffer to sector n.
func (sd *SDCard) WriteSector(n uint32) error {
	if n >= sd.Sectors() {
		return &rv32.BusError{Code: ErrBadSector}
	}
	copy(sd.image[n*SectorSize:(n+1)*SectorSize], sd.buf[:])
	sd.dirty = true
	return nil
}

// NextByte returns the byte at the buffer index and advances it.
func (sd *SDCard) NextByte() byte {
	b := sd.buf[sd.idx]
	sd.idx = (sd.idx + 1) % SectorSize
	return b
}

// PutByte stores a byte at the buffer index and advances it.
func (sd *SDCard) PutByte(b byte) {
	sd.buf[sd.idx] = b
	sd.idx = (sd.idx + 1) % SectorSize
}
