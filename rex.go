package x64dis

// rex is the decoded view of a REX prefix byte, matching pattern 0100 WRXB.
type rex struct {
	w, r, x, b bool
}

// isRexByte reports whether b is a REX prefix byte: the top nibble is 0100.
func isRexByte(b byte) bool {
	return b>>4 == 0b0100
}

func parseRex(b byte) rex {
	return rex{
		w: b&0x08 != 0,
		r: b&0x04 != 0,
		x: b&0x02 != 0,
		b: b&0x01 != 0,
	}
}
