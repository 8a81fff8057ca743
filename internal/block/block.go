package block

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSectionTable reports a section table whose lengths do not sum to the
// declared block length.
var ErrSectionTable = errors.New("section table does not match block length")

type Kind int

const (
	KindGeneric Kind = iota
	KindSectionHeader
	KindInterfaceDescription
	KindEnhancedPacket
)

func (k Kind) String() string {
	switch k {
	case KindSectionHeader:
		return "Section Header Block"
	case KindInterfaceDescription:
		return "Interface Description Block"
	case KindEnhancedPacket:
		return "Enhanced Packet Block"
	default:
		return "Generic Block"
	}
}

// ErrorKind is the decode-error state carried in-band on a block.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrZeroLength
	ErrTruncated
)

func (e ErrorKind) String() string {
	switch e {
	case ErrZeroLength:
		return "zero length"
	case ErrTruncated:
		return "truncated"
	default:
		return "none"
	}
}

// Section is one labelled byte range of a block.
type Section struct {
	Label  string
	Length int
}

// Block is implemented by *Generic, *SectionHeader, *InterfaceDescription
// and *EnhancedPacket only.
type Block interface {
	ID() int
	Kind() Kind
	Type() uint32
	Length() int
	DeclaredLength() int
	Raw() []byte
	Err() ErrorKind
	Sections() []Section
	Title() string
	Rows(width int) int

	isBlock()
}

const (
	headerSize  = 8
	trailerSize = 4
	frameSize   = headerSize + trailerSize
)

// BytesPerRow is the number of bytes that fit in width display columns.
// Each byte takes two glyph columns plus one separator; the last byte of a
// row needs no separator.
func BytesPerRow(width int) int {
	n := (width + 1) / 3
	if n < 1 {
		return 1
	}
	return n
}

type base struct {
	id       int
	typ      uint32
	raw      []byte
	length   int
	declared int
	err      ErrorKind
	errMsg   string
	sections []Section
}

// newBase wraps raw, which was cut at the length the block header declares.
func newBase(id int, typ uint32, raw []byte) base {
	return base{id: id, typ: typ, raw: raw, length: len(raw), declared: len(raw)}
}

func (b *base) ID() int          { return b.id }
func (b *base) Type() uint32     { return b.typ }
func (b *base) Length() int      { return b.length }
func (b *base) Raw() []byte      { return b.raw }
func (b *base) Err() ErrorKind   { return b.err }
func (b *base) isBlock()         {}
func (b *base) prefix() string   { return strconv.Itoa(b.id) + ": " }
func (b *base) failed() bool     { return b.err != ErrNone }
func (b *base) errTitle() string { return b.prefix() + "ERROR " + b.errMsg }

// DeclaredLength is the value of the header's length field, which differs
// from Length only for truncated blocks. It is 0 when the header itself was
// cut short.
func (b *base) DeclaredLength() int { return b.declared }

// Sections returns the block's section table. The slice is shared and must
// not be modified.
func (b *base) Sections() []Section { return b.sections }

func (b *base) Rows(width int) int {
	if b.failed() {
		return 1
	}
	bpr := BytesPerRow(width)
	return (b.length+bpr-1)/bpr + 1
}

func (b *base) fail(kind ErrorKind, msg string) {
	b.err = kind
	b.errMsg = msg
	b.sections = nil
	if b.length > 0 {
		b.sections = []Section{{Label: "Unreadable", Length: b.length}}
	}
}

// Generic is a block decoded only by its framing, or a block whose header
// could not be decoded at all.
type Generic struct {
	base
}

func (g *Generic) Kind() Kind { return KindGeneric }

func (g *Generic) Title() string {
	if g.failed() {
		return g.errTitle()
	}
	return g.prefix() + typeName(g.typ)
}

func newGeneric(id int, typ uint32, raw []byte) (*Generic, error) {
	g := &Generic{base: newBase(id, typ, raw)}
	g.sections = frame(Section{Label: "Data", Length: len(raw) - frameSize})
	return g, checkSections(&g.base)
}

func newZeroLength(id int, typ uint32) *Generic {
	g := &Generic{base: base{id: id, typ: typ}}
	g.fail(ErrZeroLength, "Block has zero length")
	return g
}

func newTruncated(id int, typ uint32, raw []byte, declared int) *Generic {
	g := &Generic{base: base{id: id, typ: typ, raw: raw, length: len(raw), declared: declared}}
	g.fail(ErrTruncated, fmt.Sprintf("Block truncated (%d bytes declared, %d available)", declared, len(raw)))
	return g
}

// newShortHeader holds trailing bytes too few to carry a block length.
func newShortHeader(id int, typ uint32, raw []byte) *Generic {
	g := &Generic{base: base{id: id, typ: typ, raw: raw, length: len(raw)}}
	g.fail(ErrTruncated, fmt.Sprintf("Block header truncated (%d of %d bytes)", len(raw), headerSize))
	return g
}

// frame wraps body entries in the header and trailer fields shared by every
// block kind.
func frame(body ...Section) []Section {
	out := make([]Section, 0, len(body)+3)
	out = append(out, Section{Label: "Block Type", Length: 4}, Section{Label: "Block Length", Length: 4})
	for _, s := range body {
		if s.Length > 0 {
			out = append(out, s)
		}
	}
	return append(out, Section{Label: "Block Length", Length: trailerSize})
}

func checkSections(b *base) error {
	sum := 0
	for _, s := range b.sections {
		sum += s.Length
	}
	if sum != b.length {
		return fmt.Errorf("block %d: sections sum to %d, declared length %d: %w", b.id, sum, b.length, ErrSectionTable)
	}
	return nil
}

var typeNames = map[uint32]string{
	0x00000002: "Packet Block",
	0x00000003: "Simple Packet Block",
	0x00000004: "Name Resolution Block",
	0x00000005: "Interface Statistics Block",
	0x0000000A: "Decryption Secrets Block",
	0x00000BAD: "Custom Block",
	0x40000BAD: "Custom Block (no copy)",
}

func typeName(typ uint32) string {
	if name, ok := typeNames[typ]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Block (0x%08X)", typ)
}
