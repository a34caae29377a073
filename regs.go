package x64dis

// Register name tables, keyed by the 4-bit index recovered from ModR/M/SIB and
// extended by REX.R/X/B. Names are lower case per the external rendering contract.

var reg8NoRex = [16]string{
	"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh",
	"r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b",
}

// reg8Rex is used whenever a REX prefix is present at all, even REX with no bits
// set: the presence of the prefix byte retires AH/CH/DH/BH in favor of SPL/BPL/SIL/DIL.
var reg8Rex = [16]string{
	"al", "cl", "dl", "bl", "spl", "bpl", "sil", "dil",
	"r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b",
}

var reg16 = [16]string{
	"ax", "cx", "dx", "bx", "sp", "bp", "si", "di",
	"r8w", "r9w", "r10w", "r11w", "r12w", "r13w", "r14w", "r15w",
}

var reg32 = [16]string{
	"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi",
	"r8d", "r9d", "r10d", "r11d", "r12d", "r13d", "r14d", "r15d",
}

var reg64 = [16]string{
	"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

// regName returns the lower-case name of the general-purpose register at the given
// extended index (0-15) for the given width in bytes. hasRex distinguishes the
// byte-register naming scheme, per the REX-byte-presence rule above.
func regName(width uint8, index uint8, hasRex bool) string {
	switch width {
	case 1:
		if hasRex {
			return reg8Rex[index]
		}
		return reg8NoRex[index]
	case 2:
		return reg16[index]
	case 4:
		return reg32[index]
	case 8:
		return reg64[index]
	default:
		panic("x64dis: invalid register width")
	}
}
