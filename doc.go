// package x64dis decodes single x86-64 instructions from a byte buffer.
//
// usage example:
//
// 	package example
//
// 	import (
// 		"fmt"
//
// 		"github.com/x14ngch3n/MyDisassembler"
// 	)
//
// 	func DecodeOne(code []byte) error {
// 		d := x64dis.NewDecoder()
// 		res, err := d.Decode(code, 0)
// 		if err != nil {
// 			return err
// 		}
// 		fmt.Printf("%d bytes: %s ->%s\n", res.Length, res.Mnemonic, res.Text)
// 		return nil
// 	}
package x64dis
