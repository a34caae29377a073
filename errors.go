package x64dis

import "fmt"

// DecodeErrorKind classifies why a decode attempt failed.
type DecodeErrorKind uint8

const (
	// UnknownOpcode means no opcode-table row exists for (effective_prefix, opcode),
	// even after the REXW -> REX -> NONE fallback chain.
	UnknownOpcode DecodeErrorKind = iota
	// UnknownOperandForm means the opcode resolved to a mnemonic, but no operand-table
	// row exists for (effective_prefix, mnemonic, opcode).
	UnknownOperandForm
	// TruncatedInstruction means the byte stream ran out while a required ModR/M, SIB,
	// displacement, or immediate byte was still pending.
	TruncatedInstruction
)

func (k DecodeErrorKind) String() string {
	switch k {
	case UnknownOpcode:
		return "UnknownOpcode"
	case UnknownOperandForm:
		return "UnknownOperandForm"
	case TruncatedInstruction:
		return "TruncatedInstruction"
	default:
		return "UnknownDecodeError"
	}
}

// DecodeError reports a fatal decode failure: the core never silently substitutes or
// guesses, so every failure carries the byte span it attempted and the offending bytes.
//
// A DecodeError invalidates only the in-progress instruction. The cache is not
// populated for the failed span, and the caller decides how to resynchronize.
type DecodeError struct {
	Kind  DecodeErrorKind
	Start int
	End   int
	Bytes []byte
	msg   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at [%#x, %#x): %#v: %s", e.Kind, e.Start, e.End, e.Bytes, e.msg)
}

func newDecodeError(kind DecodeErrorKind, src []byte, start, end int, msg string) *DecodeError {
	if end > len(src) {
		end = len(src)
	}
	b := make([]byte, end-start)
	copy(b, src[start:end])
	return &DecodeError{Kind: kind, Start: start, End: end, Bytes: b, msg: msg}
}
