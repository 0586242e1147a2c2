package rv32

import "testing"

func TestDisassemble(t *testing.T) {
	tests := []struct {
		pc    uint32
		instr uint32
		want  string
	}{
		{0x04, 0x12345537, "lui x10, 0x12345"},
		{0x08, 0x67850513, "addi x10, x10, 1656"},
		{0x14, 0xfff5a613, "slti x12, x11, -1"},
		{0x2c, 0x00369693, "slli x13, x13, 0x3"},
		{0x38, 0x4016d693, "srai x13, x13, 0x1"},
		{0x40, 0x40c70733, "sub x14, x14, x12"},
		{0x5c, 0x4108d933, "sra x18, x17, x16"},
		{0x6c, 0x013a2223, "sw x19, 4(x20)"},
		{0x80, 0x007a0a83, "lb x21, 7(x20)"},
		{0xa0, 0x360000ef, "jal x1, 0x400"},
		{0x400, 0x00008067, "jalr x0, 0(x1)"},
		{0xa4, 0x376b0263, "beq x22, x22, 0x408"},
		{0x438, 0xfffff117, "auipc x2, 0xfffff"},
		{0x00, 0x00000000, ".word 0x00000000"},
		{0x00, 0x02000033, ".word 0x02000033"}, // mul: not RV32I
	}
	for _, tc := range tests {
		if got := Disassemble(tc.pc, tc.instr); got != tc.want {
			t.Errorf("Disassemble(%#x, %#08x) = %q, want %q", tc.pc, tc.instr, got, tc.want)
		}
	}
}
