package rv32

import (
	"errors"
	"fmt"
)

// Width is the size in bytes of a single bus transaction.
type Width uint32

const (
	Byte Width = 1
	Half Width = 2
	Word Width = 4
)

// Bus is the CPU's only external dependency: a memory fabric that either
// completes a transaction or reports a failure. On a load the bus writes
// the value, zero-extended, into the low `width` bytes of *data; on a
// store it consumes only the low `width` bytes. Multi-byte transactions
// are little-endian. The CPU never inspects how an address is satisfied;
// RAM versus MMIO is entirely the implementation's concern.
//
// A nil return means success. Implementations report the cause of a
// failure as a *BusError so the CPU can fold the code into its fault
// status; any other error is treated as BusError code 1.
type Bus interface {
	Access(addr uint32, width Width, store bool, data *uint32) error
}

// BusError is a failed bus transaction. Code is implementation-defined
// and non-zero; the CPU carries it through without interpreting it.
type BusError struct {
	Code uint32
}

func (e *BusError) Error() string {
	return fmt.Sprintf("bus error %#x", e.Code)
}

// busCode extracts the implementation code from a bus failure.
func busCode(err error) uint32 {
	var be *BusError
	if errors.As(err, &be) && be.Code != 0 {
		return be.Code
	}
	return 1
}
