// Package machine implements the reference host platform behind the
// CPU's bus: a flat little-endian RAM, the memory-mapped UART/LED
// registers, and a sector-buffered SD-card device. Firmware images are
// compiled against exactly this register map.
package machine

import (
	"fmt"

	"github.com/oisee/rv32emu/pkg/rv32"
)

// MMIO register addresses. Everything at or above IORegionStart is a
// device register; everything below backs onto RAM.
const (
	LED               = 0xFFFFFFFC
	UARTOut           = 0xFFFFFFF8
	UARTIn            = 0xFFFFFFF4
	SDCardBusy        = 0xFFFFFFF0
	SDCardReadSector  = 0xFFFFFFEC
	SDCardNextByte    = 0xFFFFFFE8
	SDCardStatus      = 0xFFFFFFE4
	SDCardWriteSector = 0xFFFFFFE0

	IORegionStart = SDCardWriteSector
)

// Bus failure codes reported through *rv32.BusError.
const (
	ErrOutOfRange uint32 = 1 // neither RAM nor a recognized register
	ErrWriteOnly  uint32 = 2 // read of a write-only register
	ErrReadOnly   uint32 = 3 // write to a read-only register
	ErrBadSector  uint32 = 4 // sector index beyond the backing image
)

// DefaultMemSize is the default RAM size in bytes.
const DefaultMemSize = 8 * 1024 * 1024

// noInput reads back from UART_OUT (transmitter idle) and from UART_IN
// when no byte is pending.
const noInput = 0xFFFFFFFF

// Config assembles a Machine.
type Config struct {
	MemSize int    // RAM bytes; DefaultMemSize if zero
	Image   []byte // firmware, copied to address 0
	Console Console
	SDImage []byte // SD-card backing store; nil for no card
}

// Machine is the reference rv32.Bus implementation: RAM below
// IORegionStart, the device registers above it. It owns all memory and
// device state; the CPU observes it only through Access.
type Machine struct {
	ram     []byte
	console Console
	sd      *SDCard
}

// New builds a machine with RAM initialized to 0xFF (the flash erase
// value) and the firmware image, if any, at address 0.
func New(cfg Config) (*Machine, error) {
	size := cfg.MemSize
	if size == 0 {
		size = DefaultMemSize
	}
	if len(cfg.Image) > size {
		return nil, fmt.Errorf("firmware size (%d B) exceeds RAM size (%d B)", len(cfg.Image), size)
	}
	ram := make([]byte, size)
	for i := range ram {
		ram[i] = 0xFF
	}
	copy(ram, cfg.Image)
	console := cfg.Console
	if console == nil {
		console = NullConsole{}
	}
	return &Machine{
		ram:     ram,
		console: console,
		sd:      NewSDCard(cfg.SDImage),
	}, nil
}

// SDCard returns the machine's SD-card device.
func (m *Machine) SDCard() *SDCard { return m.sd }

// Access implements rv32.Bus. RAM transactions are assembled byte by
// byte, so unaligned addresses behave like any other.
func (m *Machine) Access(addr uint32, width rv32.Width, store bool, data *uint32) error {
	if addr >= IORegionStart {
		return m.mmio(addr, store, data)
	}
	if uint64(addr)+uint64(width) > uint64(len(m.ram)) {
		return &rv32.BusError{Code: ErrOutOfRange}
	}
	if store {
		for i := uint32(0); i < uint32(width); i++ {
			m.ram[addr+i] = byte(*data >> (8 * i))
		}
		return nil
	}
	var v uint32
	for i := uint32(0); i < uint32(width); i++ {
		v |= uint32(m.ram[addr+i]) << (8 * i)
	}
	*data = v
	return nil
}

func (m *Machine) mmio(addr uint32, store bool, data *uint32) error {
	switch addr {
	case LED:
		if !store {
			return &rv32.BusError{Code: ErrWriteOnly}
		}
		m.console.SetLED(uint8(*data))
		return nil

	case UARTOut:
		if store {
			m.console.Transmit(byte(*data))
			return nil
		}
		*data = noInput // transmission is synchronous, always idle
		return nil

	case UARTIn:
		if store {
			return nil // ignored, matching the hardware
		}
		b, ok := m.console.Receive()
		if !ok {
			*data = noInput
			return nil
		}
		*data = uint32(b)
		return nil

	case SDCardBusy:
		if store {
			return &rv32.BusError{Code: ErrReadOnly}
		}
		*data = 0 // transfers complete within the triggering store
		return nil

	case SDCardReadSector:
		if !store {
			return &rv32.BusError{Code: ErrWriteOnly}
		}
		return m.sd.ReadSector(*data)

	case SDCardNextByte:
		if store {
			m.sd.PutByte(byte(*data))
			return nil
		}
		*data = uint32(m.sd.NextByte())
		return nil

	case SDCardStatus:
		if store {
			return &rv32.BusError{Code: ErrReadOnly}
		}
		*data = sdStatusValue
		return nil

	case SDCardWriteSector:
		if !store {
			return &rv32.BusError{Code: ErrWriteOnly}
		}
		return m.sd.WriteSector(*data)
	}
	return &rv32.BusError{Code: ErrOutOfRange}
}
