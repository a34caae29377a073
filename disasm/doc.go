// package disasm walks a byte buffer one decoded instruction at a time.
//
// example usage:
//
// 	package example
//
// 	import (
// 		"fmt"
//
// 		"github.com/x14ngch3n/MyDisassembler"
// 		"github.com/x14ngch3n/MyDisassembler/disasm"
// 	)
//
// 	func PrintAll(code []byte) error {
// 		return disasm.Walk(code, 0, func(res x64dis.Result) bool {
// 			fmt.Printf("%#x: %s\n", res.Start, res.Text)
// 			return true
// 		})
// 	}
package disasm
