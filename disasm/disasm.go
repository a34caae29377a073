package disasm

import (
	"fmt"

	"github.com/x14ngch3n/MyDisassembler"
)

// Walk repeatedly decodes instructions from src starting at start, calling
// until after each successful decode and advancing by the instruction's
// length. It stops when until returns false, when the buffer is exhausted,
// or when a decode fails, in which case the decode error is returned. This
// generalizes the "decode until RET" loop the teacher ran over a live Go
// function's machine code to "decode until the caller says stop" over any
// buffer.
func Walk(src []byte, start int, until func(x64dis.Result) bool) error {
	d := x64dis.NewDecoder()
	pos := start
	for pos < len(src) {
		res, err := d.Decode(src, pos)
		if err != nil {
			return fmt.Errorf("disasm: %w", err)
		}
		if !until(res) {
			return nil
		}
		if res.Length <= 0 {
			return fmt.Errorf("disasm: non-advancing decode at offset %d", pos)
		}
		pos += res.Length
	}
	return nil
}
