package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// termConsole attaches the emulated UART to the real terminal. Raw mode
// (no echo, no line buffering) mirrors the original hardware setup;
// Close restores the saved settings. Input is translated to serial key
// codes the firmware expects, output byte 0x7F is rendered as a
// destructive backspace.
type termConsole struct {
	in    *os.File
	out   *os.File
	saved *term.State
}

func newTermConsole() (*termConsole, error) {
	c := &termConsole{in: os.Stdin, out: os.Stdout}
	if term.IsTerminal(int(c.in.Fd())) {
		saved, err := term.MakeRaw(int(c.in.Fd()))
		if err != nil {
			return nil, fmt.Errorf("raw mode: %w", err)
		}
		c.saved = saved
	}
	return c, nil
}

// Close restores the terminal. Safe to call more than once.
func (c *termConsole) Close() {
	if c.saved != nil {
		term.Restore(int(c.in.Fd()), c.saved)
		c.saved = nil
	}
}

func (c *termConsole) Transmit(b byte) {
	if b == 0x7F {
		fmt.Fprint(c.out, "\b \b")
		return
	}
	c.out.Write([]byte{b})
}

func (c *termConsole) Receive() (byte, bool) {
	var buf [1]byte
	n, err := c.in.Read(buf[:])
	if err != nil || n == 0 {
		return 0, false
	}
	switch buf[0] {
	case '\n':
		return 0x0D, true
	case 0x08:
		return 0x7F, true
	}
	return buf[0], true
}

func (c *termConsole) SetLED(bits uint8) {}
