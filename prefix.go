package x64dis

// effectivePrefix is the table-lookup key derived from the legacy 0x66 override
// and the presence/width bit of REX. It drives which opcode/operand table row
// applies; it is not, by itself, the final word on rendered operand width (see
// operandWidth in decoder.go), since the REXW -> REX -> NONE fallback chain can
// select a row defined under a coarser prefix than the one actually present.
type effectivePrefix uint8

const (
	prefixNone effectivePrefix = iota
	prefixP66
	prefixREX
	prefixREXW
)

func (p effectivePrefix) String() string {
	switch p {
	case prefixNone:
		return "NONE"
	case prefixP66:
		return "P66"
	case prefixREX:
		return "REX"
	case prefixREXW:
		return "REXW"
	default:
		return "?"
	}
}

// fallback returns the next coarser prefix to retry a table lookup under, and
// false for NONE and P66, which have no coarser prefix to retry under.
func (p effectivePrefix) fallback() (effectivePrefix, bool) {
	switch p {
	case prefixREXW:
		return prefixREX, true
	case prefixREX:
		return prefixNone, true
	default:
		return prefixNone, false
	}
}
