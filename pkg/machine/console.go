package machine

// Console is the endpoint behind the UART and LED registers. Transmit
// receives the raw serial byte; rendering 0x7F as a terminal backspace
// is the implementation's job, as is translating terminal input to
// serial key codes (newline to 0x0D, 0x08 to 0x7F) before Receive
// returns it. Receive reports false when no byte is pending; a blocking
// implementation may simply never report false.
type Console interface {
	Transmit(b byte)
	Receive() (byte, bool)
	SetLED(bits uint8)
}

// NullConsole discards output and never has input.
type NullConsole struct{}

func (NullConsole) Transmit(byte)         {}
func (NullConsole) Receive() (byte, bool) { return 0, false }
func (NullConsole) SetLED(uint8)          {}

// BufferConsole is an in-memory console for tests and scripted runs:
// Receive drains Input, Transmit appends to Output.
type BufferConsole struct {
	Input  []byte
	Output []byte
	LED    uint8
}

func (c *BufferConsole) Transmit(b byte) {
	c.Output = append(c.Output, b)
}

func (c *BufferConsole) Receive() (byte, bool) {
	if len(c.Input) == 0 {
		return 0, false
	}
	b := c.Input[0]
	c.Input = c.Input[1:]
	return b, true
}

func (c *BufferConsole) SetLED(bits uint8) {
	c.LED = bits
}
