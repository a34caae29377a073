package lookup

import (
	"github.com/x14ngch3n/MyDisassembler"
)

const maxMnemonicLength = 16

// Inst looks up the Mnemonic for a mnemonic name. The name is converted to
// uppercase if necessary.
func Inst(mnemonic string) (x64dis.Mnemonic, bool) {
	if mnemonic == "" || len(mnemonic) >= maxMnemonicLength {
		return x64dis.MnemonicInvalid, false
	}
	return x64dis.MnemonicFromName(upperCase(mnemonic))
}

func upperCase(s string) string {
	var b [maxMnemonicLength]byte
	var ch byte
	_ = b[len(s)] // lift bounds-checks out of the loop below (golang.org/issue/14808)
	i, changed := 0, false
loop: // functions containing for-loops cannot currently be inlined (golang.org/issue/14768)
	ch = s[i]
	b[i] = ch &^ ((ch & 0x40) >> 1)
	changed = changed || b[i] != ch
	i++
	if i < len(s) {
		goto loop
	}
	if !changed {
		return s
	}
	return string(b[:len(s)])
}
