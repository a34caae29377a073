package x64dis

import (
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

// Result is the outcome of a single successful decode: the byte span consumed,
// the resolved mnemonic, and the fully rendered assembly text.
type Result struct {
	Start    int
	Length   int
	Mnemonic Mnemonic
	Text     string
}

// span is the cache key: a half-open byte range within some buffer.
type span struct {
	start, end int
}

// Decoder decodes single x86-64 instructions from a byte buffer and caches
// the rendered text by byte span. It holds no other state and is not safe for
// concurrent use by multiple goroutines without external synchronization,
// matching the single-writer-cache assumption of the core.
type Decoder struct {
	cache map[span]string
}

// NewDecoder returns a Decoder with an empty cache.
func NewDecoder() *Decoder {
	return &Decoder{cache: make(map[span]string)}
}

// Lookup returns the cached assembly text for the byte span [start, end), if
// a prior Decode call produced it.
func (d *Decoder) Lookup(start, end int) (string, bool) {
	text, ok := d.cache[span{start, end}]
	return text, ok
}

// cursor carries the per-decode state described by spec.md's data model. A
// fresh cursor is created for every Decode call; the only state that outlives
// it is the Decoder's cache.
type cursor struct {
	src   []byte
	start int
	pos   int

	legacyPrefixByte byte
	hasLegacyPrefix  bool

	has66 bool

	hasRex bool
	rex    rex

	opcode uint16

	hasModrm bool
	mrm      modrm

	hasSib bool
	sb     sib
}

func (c *cursor) length() int { return c.pos - c.start }

func (c *cursor) peek() (byte, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos], true
}

func (c *cursor) take() (byte, bool) {
	b, ok := c.peek()
	if ok {
		c.pos++
	}
	return b, ok
}

func (c *cursor) err(kind DecodeErrorKind, end int, msg string) *DecodeError {
	return newDecodeError(kind, c.src, c.start, end, msg)
}

// Decode decodes one instruction starting at src[start], following the 9-step
// sequence of spec.md §4.3, and caches the result under its byte span.
func (d *Decoder) Decode(src []byte, start int) (Result, error) {
	c := &cursor{src: src, start: start, pos: start}

	// Step 1: optional leading legacy prefix (0xF0/0xF2/0xF3 only; 0x0F is
	// left for step 4 so it can combine into a two-byte opcode).
	if b, ok := c.peek(); ok && (b == 0xF0 || b == 0xF2 || b == 0xF3) {
		c.legacyPrefixByte = b
		c.hasLegacyPrefix = true
		c.pos++
	}

	// Step 2: optional operand-size override.
	if b, ok := c.peek(); ok && b == 0x66 {
		c.has66 = true
		c.pos++
	}

	// Step 3: optional REX.
	if b, ok := c.peek(); ok && isRexByte(b) {
		c.hasRex = true
		c.rex = parseRex(b)
		c.pos++
	}

	prefix := c.effectivePrefix()

	// Step 4: opcode, table lookup with fallback, operand table lookup.
	opByte, ok := c.take()
	if !ok {
		return Result{}, c.err(TruncatedInstruction, c.pos, "missing opcode byte")
	}
	opcode := uint16(opByte)
	if opByte == 0x0F {
		second, ok := c.take()
		if !ok {
			return Result{}, c.err(TruncatedInstruction, c.pos, "missing second opcode byte")
		}
		opcode = 0x0F00 | uint16(second)
	}
	c.opcode = opcode

	mnem, lookupPrefix, err := lookupMnemonic(prefix, opcode, c)
	if err != nil {
		return Result{}, c.err(UnknownOpcode, c.pos, err.Error())
	}

	entry, ok := lookupOperandEntry(lookupPrefix, mnem, opcode)
	if !ok {
		return Result{}, c.err(UnknownOperandForm, c.pos, "no operand-table row for "+mnem.String())
	}

	// Step 5: ModR/M, if this form requires it.
	if entry.enc.hasModRM() {
		b, ok := c.take()
		if !ok {
			return Result{}, c.err(TruncatedInstruction, c.pos, "missing ModR/M byte")
		}
		c.hasModrm = true
		c.mrm = parseModrm(b, c.rex, c.hasRex)

		// Step 6: SIB, if ModR/M indicates it.
		if c.mrm.hasSIB() {
			sb, ok := c.take()
			if !ok {
				return Result{}, c.err(TruncatedInstruction, c.pos, "missing SIB byte")
			}
			c.hasSib = true
			c.sb = parseSib(sb, c.rex, c.hasRex)
		}
	}

	// Step 7: displacement, per ModR/M/SIB flags.
	var disp8 byte
	var hasDisp8 bool
	var disp32 []byte
	var hasDisp32 bool
	if c.hasModrm {
		var needDisp8, needDisp32 bool
		if c.hasSib {
			needDisp8, needDisp32 = c.sb.dispKind(c.mrm)
		} else {
			needDisp8, needDisp32 = c.mrm.hasDisp8(), c.mrm.hasDisp32()
		}
		if needDisp8 {
			b, ok := c.take()
			if !ok {
				return Result{}, c.err(TruncatedInstruction, c.pos, "missing disp8 byte")
			}
			disp8, hasDisp8 = b, true
		}
		if needDisp32 {
			b, ok := c.takeN(4)
			if !ok {
				return Result{}, c.err(TruncatedInstruction, c.pos, "missing disp32 bytes")
			}
			disp32, hasDisp32 = b, true
		}
	}

	// Step 8: resolve operands in declared order.
	operandTexts := make([]string, 0, len(entry.operands))
	for _, kind := range entry.operands {
		text, err := renderOperand(c, kind, entry, disp8, hasDisp8, disp32, hasDisp32)
		if err != nil {
			return Result{}, err
		}
		operandTexts = append(operandTexts, text)
	}

	// Step 9: emit and cache.
	var b strings.Builder
	b.WriteByte(' ')
	b.WriteString(mnem.String())
	b.WriteByte(' ')
	for _, t := range operandTexts {
		b.WriteByte(' ')
		b.WriteString(t)
	}

	result := Result{Start: start, Length: c.length(), Mnemonic: mnem, Text: b.String()}
	d.cache[span{start, start + result.Length}] = result.Text
	return result, nil
}

func (c *cursor) takeN(n int) ([]byte, bool) {
	if c.pos+n > len(c.src) {
		return nil, false
	}
	b := c.src[c.pos : c.pos+n]
	c.pos += n
	return b, true
}

// effectivePrefix derives the initial table-lookup prefix from the raw bytes
// consumed in steps 2-3, before any fallback has been attempted.
func (c *cursor) effectivePrefix() effectivePrefix {
	if c.hasRex && c.rex.w {
		return prefixREXW
	}
	if c.hasRex {
		return prefixREX
	}
	if c.has66 {
		return prefixP66
	}
	return prefixNone
}

// lookupMnemonic performs the opcode-table lookup with the REXW -> REX ->
// NONE fallback chain, peeking (not consuming) the next byte to resolve a
// /digit extension. It returns the mnemonic and the prefix under which the
// opcode-table row was actually found, which is also used as the key for the
// following operand-table lookup.
func lookupMnemonic(prefix effectivePrefix, opcode uint16, c *cursor) (Mnemonic, effectivePrefix, error) {
	for {
		if row, ok := opcodeTable[opcodeKey{prefix, opcode}]; ok {
			if m, ok := row[noDigit]; ok {
				return m, prefix, nil
			}
			if b, ok := c.peek(); ok {
				reg := int8((b >> 3) & 0x7)
				if m, ok := row[reg]; ok {
					return m, prefix, nil
				}
			}
		}
		next, more := prefix.fallback()
		if !more {
			return MnemonicInvalid, prefix, errUnknownOpcode
		}
		prefix = next
	}
}

var errUnknownOpcode = errors.New("no opcode-table row after prefix fallback")

func lookupOperandEntry(prefix effectivePrefix, m Mnemonic, opcode uint16) (operandEntry, bool) {
	e, ok := operandTable[operandKey{prefix, m, opcode}]
	return e, ok
}

// operandWidth resolves the rendered width in bytes for a reg/rm/acc operand.
// It consults the raw REX.W and 0x66 bits directly rather than whatever
// prefix a table lookup fell back to, so that operand widths still reflect
// REXW promotion even when the matching opcode/operand row was only defined
// under REX or NONE.
func operandWidth(c *cursor, override uint8) uint8 {
	if override != 0 {
		return override
	}
	if c.hasRex && c.rex.w {
		return 8
	}
	if c.has66 {
		return 2
	}
	return 4
}

func hexBE(b []byte) string {
	rev := make([]byte, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	return "0x" + hex.EncodeToString(rev)
}

func renderOperand(c *cursor, kind operandKind, entry operandEntry, disp8 byte, hasDisp8 bool, disp32 []byte, hasDisp32 bool) (string, error) {
	switch kind {
	case opReg:
		if c.hasModrm {
			width := operandWidth(c, entry.widthOverride)
			return regName(width, c.mrm.regExt, c.hasRex), nil
		}
		idx := uint8(entry.embeddedReg)
		if c.hasRex && c.rex.b {
			idx |= 0x8
		}
		width := operandWidth(c, entry.widthOverride)
		return regName(width, idx, c.hasRex), nil
	case opAcc:
		width := operandWidth(c, entry.widthOverride)
		return regName(width, 0, c.hasRex), nil
	case opRM:
		return renderRM(c, entry, disp8, hasDisp8, disp32, hasDisp32)
	case opImm8:
		b, ok := c.takeN(1)
		if !ok {
			return "", c.err(TruncatedInstruction, c.pos, "missing imm8")
		}
		return hexBE(b), nil
	case opImm16:
		b, ok := c.takeN(2)
		if !ok {
			return "", c.err(TruncatedInstruction, c.pos, "missing imm16")
		}
		return hexBE(b), nil
	case opImm32:
		b, ok := c.takeN(4)
		if !ok {
			return "", c.err(TruncatedInstruction, c.pos, "missing imm32")
		}
		return hexBE(b), nil
	case opImm64:
		b, ok := c.takeN(8)
		if !ok {
			return "", c.err(TruncatedInstruction, c.pos, "missing imm64")
		}
		return hexBE(b), nil
	case opOne:
		return "1", nil
	case opMoff:
		n := 4
		if c.hasRex && c.rex.w {
			n = 8
		}
		b, ok := c.takeN(n)
		if !ok {
			return "", c.err(TruncatedInstruction, c.pos, "missing moff")
		}
		return hexBE(b), nil
	default:
		return "", c.err(UnknownOperandForm, c.pos, "unrenderable operand kind")
	}
}

func renderRM(c *cursor, entry operandEntry, disp8 byte, hasDisp8 bool, disp32 []byte, hasDisp32 bool) (string, error) {
	if c.mrm.isRegDirect() {
		width := operandWidth(c, entry.widthOverride)
		return regName(width, c.mrm.rmExt, c.hasRex), nil
	}

	if !c.hasSib {
		if c.mrm.isRIPRelative() {
			return hexBE(disp32), nil
		}
		base := regName(8, c.mrm.rmExt, c.hasRex)
		switch {
		case hasDisp8:
			return "[" + base + " + " + strconv.Itoa(int(disp8)) + "]", nil
		case hasDisp32:
			return "[" + base + " + " + hexBE(disp32) + "]", nil
		default:
			return "[" + base + "]", nil
		}
	}

	// SIB present.
	if c.sb.noBase(c.mrm) && c.sb.noIndex {
		return hexBE(disp32), nil
	}

	var parts []string
	if hasDisp8 {
		parts = append(parts, strconv.Itoa(int(disp8)))
	} else if hasDisp32 {
		parts = append(parts, hexBE(disp32))
	}
	if !c.sb.noBase(c.mrm) {
		parts = append(parts, regName(8, c.sb.baseExt, c.hasRex))
	}
	if !c.sb.noIndex {
		parts = append(parts, regName(8, c.sb.indexExt, c.hasRex)+" * "+strconv.Itoa(int(c.sb.scale)))
	}
	return "[" + strings.Join(parts, " + ") + "]", nil
}
