package x64dis

import "testing"

func TestDecodeScenarios(t *testing.T) {
	cases := []struct {
		name   string
		bytes  []byte
		mnem   Mnemonic
		text   string
		length int
	}{
		{"nop", []byte{0x90}, NOP, " nop ", 1},
		{"ret", []byte{0xC3}, RET, " ret ", 1},
		{"mov eax imm32", []byte{0xB8, 0x44, 0x33, 0x22, 0x11}, MOV, " mov  eax 0x11223344", 5},
		{"mov rax imm64", []byte{0x48, 0xB8, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, MOV, " mov  rax 0x1122334455667788", 10},
		{"add sib base+index", []byte{0x01, 0x84, 0x00, 0x00, 0x80, 0x00, 0x00}, ADD, " add  [0x00008000 + rax + rax * 1] eax", 7},
		{"mov sib nobase noindex", []byte{0x8B, 0x0C, 0x25, 0x00, 0x00, 0x08, 0x00}, MOV, " mov  ecx 0x00080000", 7},
		{"and eax imm8", []byte{0x83, 0xE0, 0x01}, AND, " and  eax 0x01", 3},
		{"add rex.r extends reg", []byte{0x44, 0x01, 0x04, 0x91}, ADD, " add  [rcx + rdx * 4] r8d", 4},
		{"add rex.b extends sib base", []byte{0x41, 0x01, 0x04, 0x91}, ADD, " add  [r9 + rdx * 4] eax", 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewDecoder()
			res, err := d.Decode(c.bytes, 0)
			if err != nil {
				t.Fatalf("Decode(%#v) failed: %v", c.bytes, err)
			}
			if res.Mnemonic != c.mnem {
				t.Fatalf("mnemonic = %v, want %v", res.Mnemonic, c.mnem)
			}
			if res.Text != c.text {
				t.Fatalf("text = %q, want %q", res.Text, c.text)
			}
			if res.Length != c.length {
				t.Fatalf("length = %d, want %d", res.Length, c.length)
			}
		})
	}
}

func TestDecodeLengthEqualsConsumption(t *testing.T) {
	d := NewDecoder()
	src := []byte{0x01, 0x84, 0x00, 0x00, 0x80, 0x00, 0x00, 0x90}
	res, err := d.Decode(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Length != 7 {
		t.Fatalf("length = %d, want 7", res.Length)
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	src := []byte{0x48, 0x01, 0xD8}
	d1 := NewDecoder()
	r1, err := d1.Decode(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	d2 := NewDecoder()
	r2, err := d2.Decode(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r1 != r2 {
		t.Fatalf("two decodes of the same input diverged: %+v vs %+v", r1, r2)
	}
}

func TestCacheKeyFidelity(t *testing.T) {
	d := NewDecoder()
	src := []byte{0xB8, 0x44, 0x33, 0x22, 0x11}
	res, err := d.Decode(src, 0)
	if err != nil {
		t.Fatal(err)
	}
	text, ok := d.Lookup(res.Start, res.Start+res.Length)
	if !ok {
		t.Fatal("Lookup returned no cached entry after Decode")
	}
	if text != res.Text {
		t.Fatalf("cached text = %q, want %q", text, res.Text)
	}
}

func TestPrefixFallbackCoherence(t *testing.T) {
	d := NewDecoder()
	noRex, err := d.Decode([]byte{0x01, 0xD8}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if noRex.Mnemonic != ADD || noRex.Text != " add  eax ebx" {
		t.Fatalf("no-REX ADD = %q", noRex.Text)
	}

	d2 := NewDecoder()
	rexw, err := d2.Decode([]byte{0x48, 0x01, 0xD8}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if rexw.Mnemonic != ADD || rexw.Text != " add  rax rbx" {
		t.Fatalf("REXW ADD = %q, want widths promoted to 64-bit", rexw.Text)
	}
}

func TestModrmMod11RegisterCycling(t *testing.T) {
	want := []string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi"}
	for rm := 0; rm < 8; rm++ {
		d := NewDecoder()
		modrmByte := byte(0xC0 | rm) // mod=11, reg=000, rm=rm
		res, err := d.Decode([]byte{0x01, modrmByte}, 0)
		if err != nil {
			t.Fatal(err)
		}
		// MR form: the rm operand renders first, the reg operand (eax) last.
		if wantText := " add  " + want[rm] + " eax"; res.Text != wantText {
			t.Fatalf("rm=%d: text = %q, want %q", rm, res.Text, wantText)
		}
	}
	for reg := 0; reg < 8; reg++ {
		d := NewDecoder()
		modrmByte := byte(0xC0 | (reg << 3)) // mod=11, reg=reg, rm=000
		res, err := d.Decode([]byte{0x01, modrmByte}, 0)
		if err != nil {
			t.Fatal(err)
		}
		wantReg := want[reg]
		if !containsWord(res.Text, wantReg) {
			t.Fatalf("reg=%d: text = %q, want it to contain %q", reg, res.Text, wantReg)
		}
	}
}

func containsWord(s, word string) bool {
	for i := 0; i+len(word) <= len(s); i++ {
		if s[i:i+len(word)] == word {
			return true
		}
	}
	return false
}

func TestRexExtensionsAreIndependent(t *testing.T) {
	// REX.R alone promotes reg into R8-R15; REX.B alone promotes rm.
	d := NewDecoder()
	res, err := d.Decode([]byte{0x44, 0x01, 0xC0}, 0) // REX.R, mod=11 reg=000 rm=000
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != " add  eax r8d" {
		t.Fatalf("REX.R-only = %q, want reg promoted to r8d", res.Text)
	}

	d2 := NewDecoder()
	res2, err := d2.Decode([]byte{0x41, 0x01, 0xC0}, 0) // REX.B, mod=11 reg=000 rm=000
	if err != nil {
		t.Fatal(err)
	}
	if res2.Text != " add  r8d eax" {
		t.Fatalf("REX.B-only = %q, want rm promoted to r8d", res2.Text)
	}
}

func TestDecodeTruncatedInstruction(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode([]byte{0xB8, 0x01}, 0) // mov eax, imm32 missing 3 bytes
	if err == nil {
		t.Fatal("expected a truncated-instruction error")
	}
	var de *DecodeError
	if !asDecodeError(err, &de) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if de.Kind != TruncatedInstruction {
		t.Fatalf("Kind = %v, want TruncatedInstruction", de.Kind)
	}
}

func asDecodeError(err error, target **DecodeError) bool {
	de, ok := err.(*DecodeError)
	if !ok {
		return false
	}
	*target = de
	return true
}

func TestDecodeUnknownOpcode(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode([]byte{0x0F, 0xFF}, 0)
	if err == nil {
		t.Fatal("expected an unknown-opcode error")
	}
}
