package rv32

// RV32I instruction-word field layout. All helpers operate on the raw
// unsigned word; sign extension happens once, inside the immediate
// extractors, by replicating the MSB of the encoded field.

// Base opcodes (bits 0..6).
const (
	opcodeLoad   = 0x03
	opcodeOpImm  = 0x13
	opcodeAUIPC  = 0x17
	opcodeStore  = 0x23
	opcodeOp     = 0x33
	opcodeLUI    = 0x37
	opcodeBranch = 0x63
	opcodeJALR   = 0x67
	opcodeJAL    = 0x6F
)

// funct3 values within a base opcode.
const (
	funct3LB  = 0x0
	funct3LH  = 0x1
	funct3LW  = 0x2
	funct3LBU = 0x4
	funct3LHU = 0x5

	funct3SB = 0x0
	funct3SH = 0x1
	funct3SW = 0x2

	funct3ADDI  = 0x0
	funct3SLLI  = 0x1
	funct3SLTI  = 0x2
	funct3SLTIU = 0x3
	funct3XORI  = 0x4
	funct3SRLI  = 0x5 // SRLI/SRAI, split on funct7
	funct3ORI   = 0x6
	funct3ANDI  = 0x7

	funct3ADD  = 0x0 // ADD/SUB, split on funct7
	funct3SLL  = 0x1
	funct3SLT  = 0x2
	funct3SLTU = 0x3
	funct3XOR  = 0x4
	funct3SRL  = 0x5 // SRL/SRA, split on funct7
	funct3OR   = 0x6
	funct3AND  = 0x7

	funct3BEQ  = 0x0
	funct3BNE  = 0x1
	funct3BLT  = 0x4
	funct3BGE  = 0x5
	funct3BLTU = 0x6
	funct3BGEU = 0x7
)

// funct7 discriminators (bit 30 set selects the second variant).
const (
	funct7Base = 0x00
	funct7Alt  = 0x20 // SUB, SRA, SRAI
)

func opcode(i uint32) uint32 { return i & 0x7F }
func rd(i uint32) uint32     { return (i >> 7) & 0x1F }
func funct3(i uint32) uint32 { return (i >> 12) & 0x7 }
func rs1(i uint32) uint32    { return (i >> 15) & 0x1F }
func rs2(i uint32) uint32    { return (i >> 20) & 0x1F }
func funct7(i uint32) uint32 { return (i >> 25) & 0x7F }

// immU extracts the U-type immediate: bits 12..31 of the word, low 12 zero.
func immU(i uint32) uint32 { return i & 0xFFFFF000 }

// immI extracts the I-type immediate: bits 20..31, sign-extended from bit 31.
func immI(i uint32) int32 { return int32(i) >> 20 }

// immS extracts the S-type immediate: bits 25..31 over bits 7..11,
// sign-extended from bit 31.
func immS(i uint32) int32 {
	v := (i>>7)&0x1F | (i>>20)&0xFE0
	return signExtend(v, 11)
}

// immB extracts the B-type immediate: 13 bits, low bit zero.
// word bit 31 -> imm[12], bit 7 -> imm[11], bits 25..30 -> imm[10:5],
// bits 8..11 -> imm[4:1].
func immB(i uint32) int32 {
	v := (i>>19)&0x1000 | (i<<4)&0x800 | (i>>20)&0x7E0 | (i>>7)&0x1E
	return signExtend(v, 12)
}

// immJ extracts the J-type immediate: 21 bits, low bit zero.
// word bit 31 -> imm[20], bits 12..19 -> imm[19:12], bit 20 -> imm[11],
// bits 21..30 -> imm[10:1].
func immJ(i uint32) int32 {
	v := (i>>11)&0x100000 | i&0xFF000 | (i>>9)&0x800 | (i>>20)&0x7FE
	return signExtend(v, 20)
}

// signExtend replicates bit `msb` of v into the higher bits.
func signExtend(v uint32, msb uint) int32 {
	shift := 31 - msb
	return int32(v<<shift) >> shift
}
