package x64dis

import (
	"testing"

	"golang.org/x/arch/x86/x86asm"
)

// TestCrossValidateAgainstX86asm differentially checks this decoder's byte
// consumption against golang.org/x/arch/x86/x86asm, an independently
// maintained x86-64 decoder, over a corpus of instructions this core is
// committed to supporting. x86asm decodes a strict superset (it also
// understands the AVX/SSE and far-jump forms this core excludes by design),
// so only instruction length is comparable here; mnemonic spelling and
// operand order diverge by convention between the two decoders.
func TestCrossValidateAgainstX86asm(t *testing.T) {
	corpus := [][]byte{
		{0x90},                                           // nop
		{0xC3},                                           // ret
		{0xB8, 0x44, 0x33, 0x22, 0x11},                   // mov eax, imm32
		{0x48, 0xB8, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, // mov rax, imm64
		{0x01, 0x84, 0x00, 0x00, 0x80, 0x00, 0x00},       // add [sib disp32], eax
		{0x8B, 0x0C, 0x25, 0x00, 0x00, 0x08, 0x00},       // mov ecx, [sib nobase]
		{0x83, 0xE0, 0x01},                               // and eax, imm8
		{0x44, 0x01, 0x04, 0x91},                         // add [rcx+rdx*4], r8d
		{0x41, 0x01, 0x04, 0x91},                         // add [r9+rdx*4], eax
		{0x01, 0xD8},                                     // add eax, ebx
		{0x48, 0x01, 0xD8},                                // add rax, rbx (REX.W)
		{0x50},                                            // push rax
		{0x58},                                            // pop rax
		{0xE9, 0x00, 0x00, 0x00, 0x00},                    // jmp rel32
		{0x74, 0x10},                                      // jz rel8
		{0xFF, 0xC0},                                      // inc eax
		{0xF7, 0xD8},                                      // neg eax
		{0xC1, 0xE0, 0x02},                                // shl eax, 2
	}

	d := NewDecoder()
	for _, bytes := range corpus {
		ours, err := d.Decode(bytes, 0)
		if err != nil {
			t.Fatalf("Decode(%#v) failed: %v", bytes, err)
		}
		theirs, err := x86asm.Decode(bytes, 64)
		if err != nil {
			t.Fatalf("x86asm.Decode(%#v) failed: %v", bytes, err)
		}
		if ours.Length != theirs.Len {
			t.Errorf("%#v: length = %d, x86asm reports %d (%v)", bytes, ours.Length, theirs.Len, theirs)
		}
	}
}
