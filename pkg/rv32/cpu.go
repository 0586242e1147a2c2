package rv32

// CPU is a single RV32I hart: program counter plus 32 general-purpose
// registers, with x0 hardwired to zero. It performs no I/O itself; every
// memory access, including instruction fetch, goes through the injected
// Bus. Registers are stored unsigned and reinterpreted as signed only at
// the points where signedness matters (SLT/SLTI, signed branches, SRA).
// All arithmetic wraps modulo 2^32.
//
// A CPU is not goroutine safe; a single goroutine should drive Step.
type CPU struct {
	bus  Bus
	pc   uint32
	regs [32]uint32
}

// NewCPU creates a hart with all registers zero and pc at initialPC.
// The bus reference is retained for the CPU's lifetime.
func NewCPU(bus Bus, initialPC uint32) *CPU {
	return &CPU{bus: bus, pc: initialPC}
}

// PC returns the address of the next instruction to execute.
func (c *CPU) PC() uint32 { return c.pc }

// Reg returns register i (0..31). x0 always reads as zero.
func (c *CPU) Reg(i int) int32 {
	if i == 0 {
		return 0
	}
	return int32(c.regs[i])
}

// State is a copyable snapshot of the architectural state.
type State struct {
	PC   uint32
	Regs [32]uint32
}

// State captures the architectural state for snapshotting.
func (c *CPU) State() State {
	return State{PC: c.pc, Regs: c.regs}
}

// Restore overwrites the architectural state from a snapshot.
func (c *CPU) Restore(s State) {
	c.pc = s.PC
	c.regs = s.Regs
	c.regs[0] = 0
}

// setReg commits a result to rd. Writes to x0 are discarded.
func (c *CPU) setReg(rd uint32, v uint32) {
	if rd != 0 {
		c.regs[rd] = v
	}
}

// Step executes exactly one instruction: fetch, decode, execute, commit.
// On success pc has advanced to the next instruction (or the taken
// branch/jump target) and the return is nil. On any fault nothing has
// been committed (pc and registers are unchanged) and the return is a
// *Fault carrying one of the documented status codes.
func (c *CPU) Step() error {
	c.regs[0] = 0

	var instr uint32
	if err := c.bus.Access(c.pc, Word, false, &instr); err != nil {
		return &Fault{Status: StatusFetchBase + busCode(err), PC: c.pc, Bus: err}
	}

	next := c.pc + 4

	switch opcode(instr) {
	case opcodeLUI:
		c.setReg(rd(instr), immU(instr))

	case opcodeAUIPC:
		c.setReg(rd(instr), c.pc+immU(instr))

	case opcodeJAL:
		target := c.pc + uint32(immJ(instr))
		c.setReg(rd(instr), c.pc+4)
		next = target

	case opcodeJALR:
		if funct3(instr) != 0 {
			return c.decodeFault(StatusBadJALRFunct3, instr)
		}
		// Target before link: rd may alias rs1.
		target := (c.regs[rs1(instr)] + uint32(immI(instr))) &^ 1
		c.setReg(rd(instr), c.pc+4)
		next = target

	case opcodeBranch:
		a, b := c.regs[rs1(instr)], c.regs[rs2(instr)]
		var taken bool
		switch funct3(instr) {
		case funct3BEQ:
			taken = a == b
		case funct3BNE:
			taken = a != b
		case funct3BLT:
			taken = int32(a) < int32(b)
		case funct3BGE:
			taken = int32(a) >= int32(b)
		case funct3BLTU:
			taken = a < b
		case funct3BGEU:
			taken = a >= b
		default:
			return c.decodeFault(StatusBadBranchFunct3, instr)
		}
		if taken {
			next = c.pc + uint32(immB(instr))
		}

	case opcodeLoad:
		addr := c.regs[rs1(instr)] + uint32(immI(instr))
		var v uint32
		switch funct3(instr) {
		case funct3LB:
			if err := c.bus.Access(addr, Byte, false, &v); err != nil {
				return c.busFault(StatusLBBase, instr, err)
			}
			c.setReg(rd(instr), uint32(int32(int8(v))))
		case funct3LH:
			if err := c.bus.Access(addr, Half, false, &v); err != nil {
				return c.busFault(StatusLHBase, instr, err)
			}
			c.setReg(rd(instr), uint32(int32(int16(v))))
		case funct3LW:
			if err := c.bus.Access(addr, Word, false, &v); err != nil {
				return c.busFault(StatusLWBase, instr, err)
			}
			c.setReg(rd(instr), v)
		case funct3LBU:
			if err := c.bus.Access(addr, Byte, false, &v); err != nil {
				return c.busFault(StatusLBUBase, instr, err)
			}
			c.setReg(rd(instr), v)
		case funct3LHU:
			if err := c.bus.Access(addr, Half, false, &v); err != nil {
				return c.busFault(StatusLHUBase, instr, err)
			}
			c.setReg(rd(instr), v)
		default:
			return c.decodeFault(StatusBadLoadFunct3, instr)
		}

	case opcodeStore:
		addr := c.regs[rs1(instr)] + uint32(immS(instr))
		switch funct3(instr) {
		case funct3SB:
			v := c.regs[rs2(instr)] & 0xFF
			if err := c.bus.Access(addr, Byte, true, &v); err != nil {
				return c.busFault(StatusSBBase, instr, err)
			}
		case funct3SH:
			v := c.regs[rs2(instr)] & 0xFFFF
			if err := c.bus.Access(addr, Half, true, &v); err != nil {
				return c.busFault(StatusSHBase, instr, err)
			}
		case funct3SW:
			v := c.regs[rs2(instr)]
			if err := c.bus.Access(addr, Word, true, &v); err != nil {
				return c.busFault(StatusSWBase, instr, err)
			}
		default:
			return c.decodeFault(StatusBadStoreFunct3, instr)
		}

	case opcodeOpImm:
		a := c.regs[rs1(instr)]
		imm := immI(instr)
		var v uint32
		switch funct3(instr) {
		case funct3ADDI:
			v = a + uint32(imm)
		case funct3SLTI:
			v = boolBit(int32(a) < imm)
		case funct3SLTIU:
			v = boolBit(a < uint32(imm))
		case funct3XORI:
			v = a ^ uint32(imm)
		case funct3ORI:
			v = a | uint32(imm)
		case funct3ANDI:
			v = a & uint32(imm)
		case funct3SLLI:
			if funct7(instr) != funct7Base {
				return c.decodeFault(StatusBadShiftImm, instr)
			}
			v = a << rs2(instr)
		case funct3SRLI:
			switch funct7(instr) {
			case funct7Base:
				v = a >> rs2(instr)
			case funct7Alt:
				v = uint32(int32(a) >> rs2(instr))
			default:
				return c.decodeFault(StatusBadShiftImm, instr)
			}
		default:
			return c.decodeFault(StatusBadOpImmFunct3, instr)
		}
		c.setReg(rd(instr), v)

	case opcodeOp:
		a, b := c.regs[rs1(instr)], c.regs[rs2(instr)]
		if f3 := funct3(instr); f3 != funct3ADD && f3 != funct3SRL &&
			funct7(instr) != funct7Base {
			return c.decodeFault(StatusBadOpFunct7, instr)
		}
		var v uint32
		switch funct3(instr) {
		case funct3ADD:
			switch funct7(instr) {
			case funct7Base:
				v = a + b
			case funct7Alt:
				v = a - b
			default:
				return c.decodeFault(StatusBadAddSub, instr)
			}
		case funct3SRL:
			switch funct7(instr) {
			case funct7Base:
				v = a >> (b & 0x1F)
			case funct7Alt:
				v = uint32(int32(a) >> (b & 0x1F))
			default:
				return c.decodeFault(StatusBadShift, instr)
			}
		case funct3SLL:
			v = a << (b & 0x1F)
		case funct3SLT:
			v = boolBit(int32(a) < int32(b))
		case funct3SLTU:
			v = boolBit(a < b)
		case funct3XOR:
			v = a ^ b
		case funct3OR:
			v = a | b
		case funct3AND:
			v = a & b
		default:
			return c.decodeFault(StatusBadOpFunct3, instr)
		}
		c.setReg(rd(instr), v)

	default:
		return c.decodeFault(StatusBadOpcode, instr)
	}

	c.pc = next
	return nil
}

func (c *CPU) decodeFault(status uint32, instr uint32) *Fault {
	return &Fault{Status: status, PC: c.pc, Instr: instr}
}

func (c *CPU) busFault(base uint32, instr uint32, err error) *Fault {
	return &Fault{Status: base + busCode(err), PC: c.pc, Instr: instr, Bus: err}
}

// boolBit returns 1 if cond is true, else 0.
func boolBit(cond bool) uint32 {
	if cond {
		return 1
	}
	return 0
}
