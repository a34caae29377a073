package x64dis

// modrm is the decoded view of a ModR/M byte: mod[7:6], reg[5:3], rm[2:0].
// regExt and rmExt fold in REX.R/REX.B to give full 4-bit register-file indexes.
type modrm struct {
	mod, reg, rm       uint8
	regExt, rmExt      uint8
}

func parseModrm(b byte, rx rex, hasRex bool) modrm {
	mod := b >> 6
	reg := (b >> 3) & 0x7
	rm := b & 0x7
	regExt := reg
	rmExt := rm
	if hasRex && rx.r {
		regExt |= 0x8
	}
	if hasRex && rx.b {
		rmExt |= 0x8
	}
	return modrm{mod: mod, reg: reg, rm: rm, regExt: regExt, rmExt: rmExt}
}

func (m modrm) isRegDirect() bool { return m.mod == 0b11 }

func (m modrm) hasSIB() bool { return m.mod != 0b11 && m.rm == 0b100 }

func (m modrm) isRIPRelative() bool { return m.mod == 0b00 && m.rm == 0b101 }

func (m modrm) hasDisp8() bool { return m.mod == 0b01 }

func (m modrm) hasDisp32() bool { return m.mod == 0b10 || (m.mod == 0b00 && m.rm == 0b101) }
