package rv32

import "fmt"

// Disassemble renders one instruction word in assembly notation.
// Branch and jump operands are shown as absolute targets, computed
// against pc. Words that do not decode render as a raw .word directive.
func Disassemble(pc uint32, instr uint32) string {
	switch opcode(instr) {
	case opcodeLUI:
		return fmt.Sprintf("lui x%d, 0x%x", rd(instr), immU(instr)>>12)
	case opcodeAUIPC:
		return fmt.Sprintf("auipc x%d, 0x%x", rd(instr), immU(instr)>>12)
	case opcodeJAL:
		return fmt.Sprintf("jal x%d, 0x%x", rd(instr), pc+uint32(immJ(instr)))
	case opcodeJALR:
		if funct3(instr) != 0 {
			break
		}
		return fmt.Sprintf("jalr x%d, %d(x%d)", rd(instr), immI(instr), rs1(instr))
	case opcodeBranch:
		var mn string
		switch funct3(instr) {
		case funct3BEQ:
			mn = "beq"
		case funct3BNE:
			mn = "bne"
		case funct3BLT:
			mn = "blt"
		case funct3BGE:
			mn = "bge"
		case funct3BLTU:
			mn = "bltu"
		case funct3BGEU:
			mn = "bgeu"
		}
		if mn != "" {
			return fmt.Sprintf("%s x%d, x%d, 0x%x", mn, rs1(instr), rs2(instr),
				pc+uint32(immB(instr)))
		}
	case opcodeLoad:
		var mn string
		switch funct3(instr) {
		case funct3LB:
			mn = "lb"
		case funct3LH:
			mn = "lh"
		case funct3LW:
			mn = "lw"
		case funct3LBU:
			mn = "lbu"
		case funct3LHU:
			mn = "lhu"
		}
		if mn != "" {
			return fmt.Sprintf("%s x%d, %d(x%d)", mn, rd(instr), immI(instr), rs1(instr))
		}
	case opcodeStore:
		var mn string
		switch funct3(instr) {
		case funct3SB:
			mn = "sb"
		case funct3SH:
			mn = "sh"
		case funct3SW:
			mn = "sw"
		}
		if mn != "" {
			return fmt.Sprintf("%s x%d, %d(x%d)", mn, rs2(instr), immS(instr), rs1(instr))
		}
	case opcodeOpImm:
		rd, rs1 := rd(instr), rs1(instr)
		switch funct3(instr) {
		case funct3ADDI:
			return fmt.Sprintf("addi x%d, x%d, %d", rd, rs1, immI(instr))
		case funct3SLTI:
			return fmt.Sprintf("slti x%d, x%d, %d", rd, rs1, immI(instr))
		case funct3SLTIU:
			return fmt.Sprintf("sltiu x%d, x%d, %d", rd, rs1, immI(instr))
		case funct3XORI:
			return fmt.Sprintf("xori x%d, x%d, %d", rd, rs1, immI(instr))
		case funct3ORI:
			return fmt.Sprintf("ori x%d, x%d, %d", rd, rs1, immI(instr))
		case funct3ANDI:
			return fmt.Sprintf("andi x%d, x%d, %d", rd, rs1, immI(instr))
		case funct3SLLI:
			if funct7(instr) == funct7Base {
				return fmt.Sprintf("slli x%d, x%d, 0x%x", rd, rs1, rs2(instr))
			}
		case funct3SRLI:
			switch funct7(instr) {
			case funct7Base:
				return fmt.Sprintf("srli x%d, x%d, 0x%x", rd, rs1, rs2(instr))
			case funct7Alt:
				return fmt.Sprintf("srai x%d, x%d, 0x%x", rd, rs1, rs2(instr))
			}
		}
	case opcodeOp:
		var mn string
		switch funct3(instr) {
		case funct3ADD:
			switch funct7(instr) {
			case funct7Base:
				mn = "add"
			case funct7Alt:
				mn = "sub"
			}
		case funct3SLL:
			mn = "sll"
		case funct3SLT:
			mn = "slt"
		case funct3SLTU:
			mn = "sltu"
		case funct3XOR:
			mn = "xor"
		case funct3SRL:
			switch funct7(instr) {
			case funct7Base:
				mn = "srl"
			case funct7Alt:
				mn = "sra"
			}
		case funct3OR:
			mn = "or"
		case funct3AND:
			mn = "and"
		}
		if mn != "" && (funct3(instr) == funct3ADD || funct3(instr) == funct3SRL ||
			funct7(instr) == funct7Base) {
			return fmt.Sprintf("%s x%d, x%d, x%d", mn, rd(instr), rs1(instr), rs2(instr))
		}
	}
	return fmt.Sprintf(".word 0x%08x", instr)
}
