package x64dis

// sib is the decoded view of a SIB byte: scale[7:6], index[5:3], base[2:0].
// indexExt and baseExt fold in REX.X/REX.B. noIndex mirrors the literal encoding
// quirk where index==0b100 with REX.X clear means "no index register at all".
type sib struct {
	scale                  uint8
	index, base            uint8
	indexExt, baseExt      uint8
	noIndex                bool
}

var sibScale = [4]uint8{1, 2, 4, 8}

func parseSib(b byte, rx rex, hasRex bool) sib {
	scale := sibScale[b>>6]
	index := (b >> 3) & 0x7
	base := b & 0x7
	indexExt := index
	baseExt := base
	if hasRex && rx.x {
		indexExt |= 0x8
	}
	if hasRex && rx.b {
		baseExt |= 0x8
	}
	noIndex := index == 0b100 && !(hasRex && rx.x)
	return sib{scale: scale, index: index, base: base, indexExt: indexExt, baseExt: baseExt, noIndex: noIndex}
}

// noBase reports the "no base, force disp32" corner case: base==0b101 with
// modrm.mod==0b00 means the SIB byte carries no base register at all, and a
// disp32 is mandatory regardless of what the ModR/M byte alone would imply.
func (s sib) noBase(mrm modrm) bool { return s.base == 0b101 && mrm.mod == 0b00 }

// dispKind reports whether a SIB-addressed operand carries a disp8, a disp32,
// or neither, per the modrm.mod / sib.base interaction in the data model.
func (s sib) dispKind(mrm modrm) (disp8, disp32 bool) {
	if s.base == 0b101 {
		switch mrm.mod {
		case 0b00:
			disp32 = true
		case 0b01:
			disp8 = true
		case 0b10:
			disp32 = true
		}
		return
	}
	return mrm.hasDisp8(), mrm.hasDisp32()
}
