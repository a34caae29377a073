package x64dis

// opcodeKey is the lookup key for the opcode table: the effective prefix and
// the one- or two-byte opcode value (0x0Fxx for two-byte forms).
type opcodeKey struct {
	prefix effectivePrefix
	opcode uint16
}

// operandKey is the lookup key for the operand table.
type operandKey struct {
	prefix   effectivePrefix
	mnemonic Mnemonic
	opcode   uint16
}

// noDigit is the sentinel ModR/M reg value meaning "this opcode has no /digit
// extension".
const noDigit int8 = -1

var opcodeTable = map[opcodeKey]map[int8]Mnemonic{}
var operandTable = map[operandKey]operandEntry{}

func addOpcode(prefix effectivePrefix, opcode uint16, reg int8, m Mnemonic) {
	key := opcodeKey{prefix, opcode}
	row, ok := opcodeTable[key]
	if !ok {
		row = map[int8]Mnemonic{}
		opcodeTable[key] = row
	}
	row[reg] = m
}

func addOperand(prefix effectivePrefix, m Mnemonic, opcode uint16, e operandEntry) {
	operandTable[operandKey{prefix, m, opcode}] = e
}

// op is a convenience for opcodes that never carry a /digit.
func op(prefix effectivePrefix, opcode uint16, m Mnemonic, e operandEntry) {
	addOpcode(prefix, opcode, noDigit, m)
	addOperand(prefix, m, opcode, e)
}

func init() {
	initNoOperandOpcodes()
	initALUGroup()
	initGroup1()
	initUnaryGroup()
	initShiftGroup()
	initPushPop()
	initControlTransfer()
	initConditionalJumps()
	initMovOI()
	initMovMoff()
	initMisc()
}

// initNoOperandOpcodes covers NP-form opcodes: no ModR/M, no immediate.
func initNoOperandOpcodes() {
	np := func(prefix effectivePrefix, opcode uint16, m Mnemonic) {
		op(prefix, opcode, m, operandEntry{enc: encNP})
	}
	np(prefixNone, 0x90, NOP)
	np(prefixNone, 0xC3, RET)
	np(prefixNone, 0xC9, LEAVE)
	np(prefixNone, 0xF8, CLC)
	np(prefixNone, 0xF9, STC)
	np(prefixNone, 0xFC, CLD)
	np(prefixNone, 0xFD, STD)

	np(prefixNone, 0xA4, MOVSB)
	np(prefixNone, 0xA5, MOVSD)
	np(prefixP66, 0xA5, MOVSW)
	np(prefixNone, 0xA6, CMPSB)
	np(prefixNone, 0xA7, CMPSD)
	np(prefixNone, 0xAA, STOSB)
	np(prefixNone, 0xAB, STOSD)
	np(prefixP66, 0xAB, STOSW)
	np(prefixNone, 0xAC, LODSB)
	np(prefixNone, 0xAD, LODSD)
	np(prefixP66, 0xAD, LODSW)
	np(prefixNone, 0xAE, SCASB)
	np(prefixNone, 0xAF, SCASD)

	np(prefixNone, 0x0FA2, CPUID)
	np(prefixNone, 0x0F0B, UD2)
}

// aluOp names one of the eight mnemonics sharing a /digit-extended opcode in
// the 8-way arithmetic/logic group, in standard ModR/M reg order.
type aluOp struct {
	mnemonic Mnemonic
	reg      int8
}

var aluGroup = []aluOp{
	{ADD, 0}, {OR, 1}, {ADC, 2}, {SBB, 3}, {AND, 4}, {SUB, 5}, {XOR, 6}, {CMP, 7},
}

// initALUGroup builds the register-register (MR/RM) and accumulator-immediate
// (I) forms of the 8-way arithmetic/logic group, plus the /digit-extended
// immediate-to-r/m forms (MI) at both the imm8-sign-extended and imm32 widths.
func initALUGroup() {
	iOpcodes := []uint16{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D}
	mrOpcodes := []uint16{0x01, 0x09, 0x11, 0x19, 0x21, 0x29, 0x31, 0x39}
	rmOpcodes := []uint16{0x03, 0x0B, 0x13, 0x1B, 0x23, 0x2B, 0x33, 0x3B}

	for i, a := range aluGroup {
		op(prefixNone, iOpcodes[i], a.mnemonic, operandEntry{enc: encI, operands: []operandKind{opAcc, opImm32}})
		op(prefixP66, iOpcodes[i], a.mnemonic, operandEntry{enc: encI, operands: []operandKind{opAcc, opImm16}})

		op(prefixNone, mrOpcodes[i], a.mnemonic, operandEntry{enc: encMR, operands: []operandKind{opRM, opReg}})
		op(prefixNone, rmOpcodes[i], a.mnemonic, operandEntry{enc: encRM, operands: []operandKind{opReg, opRM}})

		addOpcode(prefixNone, 0x83, a.reg, a.mnemonic)
		addOpcode(prefixNone, 0x81, a.reg, a.mnemonic)
	}
	for _, a := range aluGroup {
		addOperand(prefixNone, a.mnemonic, 0x83, operandEntry{enc: encMI, operands: []operandKind{opRM, opImm8}})
		addOperand(prefixNone, a.mnemonic, 0x81, operandEntry{enc: encMI, operands: []operandKind{opRM, opImm32}})
	}

	op(prefixNone, 0x85, TEST, operandEntry{enc: encMR, operands: []operandKind{opRM, opReg}})
	op(prefixNone, 0x87, XCHG, operandEntry{enc: encMR, operands: []operandKind{opRM, opReg}})
}

// initGroup1 is folded into initALUGroup (opcodes 0x81/0x83); kept as a named
// no-op for symmetry with the other group initializers.
func initGroup1() {}

// initUnaryGroup builds the single-operand M-form /digit group sharing opcode
// 0xF7 (plus the immediate-to-r/m TEST form sharing the same opcode) and 0xFF.
func initUnaryGroup() {
	addOpcode(prefixNone, 0xF7, 0, TEST)
	addOpcode(prefixNone, 0xF7, 2, NOT)
	addOpcode(prefixNone, 0xF7, 3, NEG)
	addOpcode(prefixNone, 0xF7, 4, MUL)
	addOpcode(prefixNone, 0xF7, 5, IMUL)
	addOpcode(prefixNone, 0xF7, 6, DIV)
	addOpcode(prefixNone, 0xF7, 7, IDIV)

	addOperand(prefixNone, TEST, 0xF7, operandEntry{enc: encMI, operands: []operandKind{opRM, opImm32}})
	for _, m := range []Mnemonic{NOT, NEG, MUL, IMUL, DIV, IDIV} {
		addOperand(prefixNone, m, 0xF7, operandEntry{enc: encM, operands: []operandKind{opRM}})
	}

	addOpcode(prefixNone, 0xFF, 0, INC)
	addOpcode(prefixNone, 0xFF, 1, DEC)
	addOperand(prefixNone, INC, 0xFF, operandEntry{enc: encM, operands: []operandKind{opRM}})
	addOperand(prefixNone, DEC, 0xFF, operandEntry{enc: encM, operands: []operandKind{opRM}})
}

// initShiftGroup builds the /digit shift-rotate group, shared between the
// imm8-count form (0xC1) and the implicit shift-by-one form (0xD1).
func initShiftGroup() {
	shiftOps := []aluOp{
		{ROL, 0}, {ROR, 1}, {RCL, 2}, {RCR, 3}, {SHL, 4}, {SHR, 5}, {SAL, 6}, {SAR, 7},
	}
	for _, s := range shiftOps {
		addOpcode(prefixNone, 0xC1, s.reg, s.mnemonic)
		addOpcode(prefixNone, 0xD1, s.reg, s.mnemonic)
		addOperand(prefixNone, s.mnemonic, 0xC1, operandEntry{enc: encMI, operands: []operandKind{opRM, opImm8}})
		addOperand(prefixNone, s.mnemonic, 0xD1, operandEntry{enc: encM1, operands: []operandKind{opRM, opOne}})
	}
}

// initPushPop builds the opcode-embedded-register O-form PUSH/POP family.
// Operand size defaults to 64 bits without any prefix at all (REX.W is not
// encodable here) and narrows to 16 bits under 0x66; the width is therefore
// forced explicitly rather than auto-resolved from REX.W.
func initPushPop() {
	for i := uint16(0); i < 8; i++ {
		reg := int8(i)
		op(prefixNone, 0x50+i, PUSH, operandEntry{enc: encO, embeddedReg: reg, operands: []operandKind{opReg}, widthOverride: 8})
		op(prefixP66, 0x50+i, PUSH, operandEntry{enc: encO, embeddedReg: reg, operands: []operandKind{opReg}, widthOverride: 2})
		op(prefixNone, 0x58+i, POP, operandEntry{enc: encO, embeddedReg: reg, operands: []operandKind{opReg}, widthOverride: 8})
		op(prefixP66, 0x58+i, POP, operandEntry{enc: encO, embeddedReg: reg, operands: []operandKind{opReg}, widthOverride: 2})
	}
}

// initControlTransfer builds the unconditional D-form control-transfer
// opcodes and LEA.
func initControlTransfer() {
	op(prefixNone, 0xE8, CALL, operandEntry{enc: encD, operands: []operandKind{opImm32}})
	op(prefixNone, 0xE9, JMP, operandEntry{enc: encD, operands: []operandKind{opImm32}})
	op(prefixNone, 0xEB, JMP, operandEntry{enc: encD, operands: []operandKind{opImm8}})
	op(prefixNone, 0xE2, LOOP, operandEntry{enc: encD, operands: []operandKind{opImm8}})

	op(prefixNone, 0x8D, LEA, operandEntry{enc: encRM, operands: []operandKind{opReg, opRM}})

	op(prefixNone, 0x89, MOV, operandEntry{enc: encMR, operands: []operandKind{opRM, opReg}})
	op(prefixNone, 0x8B, MOV, operandEntry{enc: encRM, operands: []operandKind{opReg, opRM}})
}

// initConditionalJumps builds the short (0x70-0x7F) and near two-byte
// (0x0F80-0x0F8F) conditional-jump families, sharing the standard x86
// condition-code numbering in jccTable.
func initConditionalJumps() {
	for cc := uint16(0); cc < 16; cc++ {
		m := jccTable[cc]
		op(prefixNone, 0x70+cc, m, operandEntry{enc: encD, operands: []operandKind{opImm8}})
		op(prefixNone, 0x0F80+cc, m, operandEntry{enc: encD, operands: []operandKind{opImm32}})
	}
}

// initMovOI builds the opcode-embedded-register OI-form MOV immediate family.
// 0xB0-0xB7 is inherently byte-sized; 0xB8-0xBF is defined explicitly under
// all three width-bearing prefixes so that reg and immediate widths agree
// without needing the fallback chain.
func initMovOI() {
	for i := uint16(0); i < 8; i++ {
		reg := int8(i)
		op(prefixNone, 0xB0+i, MOV, operandEntry{enc: encOI, embeddedReg: reg, operands: []operandKind{opReg, opImm8}, widthOverride: 1})

		op(prefixNone, 0xB8+i, MOV, operandEntry{enc: encOI, embeddedReg: reg, operands: []operandKind{opReg, opImm32}})
		op(prefixP66, 0xB8+i, MOV, operandEntry{enc: encOI, embeddedReg: reg, operands: []operandKind{opReg, opImm16}})
		op(prefixREXW, 0xB8+i, MOV, operandEntry{enc: encOI, embeddedReg: reg, operands: []operandKind{opReg, opImm64}})
	}
}

// initMovMoff builds the accumulator<->moff MOV family. 0xA0/0xA2 fix the
// accumulator at 8 bits; 0xA1/0xA3 auto-resolve it like any other operand.
func initMovMoff() {
	op(prefixNone, 0xA0, MOV, operandEntry{enc: encD, operands: []operandKind{opAcc, opMoff}, widthOverride: 1})
	op(prefixNone, 0xA2, MOV, operandEntry{enc: encD, operands: []operandKind{opMoff, opAcc}, widthOverride: 1})
	op(prefixNone, 0xA1, MOV, operandEntry{enc: encD, operands: []operandKind{opAcc, opMoff}})
	op(prefixNone, 0xA3, MOV, operandEntry{enc: encD, operands: []operandKind{opMoff, opAcc}})
}

func initMisc() {}
