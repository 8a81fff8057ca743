package block

import (
	"bytes"
	"encoding/binary"
)

// decodeContext carries the cross-block state of one decode pass. The
// interface registry is append-only and read by later packet blocks.
type decodeContext struct {
	catalog    *Catalog
	interfaces []uint16
}

func (c *decodeContext) linkType(interfaceID uint32) (uint16, bool) {
	if uint64(interfaceID) >= uint64(len(c.interfaces)) {
		return 0, false
	}
	return c.interfaces[interfaceID], true
}

// Decode splits raw into blocks in file order. A nil catalog uses
// NewCatalog. Malformed input never fails the call: the offending block is
// returned last with its error marker set. The returned error is non-nil only
// when a section table does not match its block, which points at a bad
// catalog rather than bad input.
func Decode(raw []byte, cat *Catalog) ([]Block, error) {
	if cat == nil {
		cat = NewCatalog()
	}
	ctx := &decodeContext{catalog: cat}
	le := binary.LittleEndian

	var out []Block
	pos, id := 0, 0
	for pos < len(raw) {
		rest := raw[pos:]
		if len(rest) < headerSize {
			var typ uint32
			if len(rest) >= 4 {
				typ = le.Uint32(rest)
			}
			out = append(out, newShortHeader(id, typ, bytes.Clone(rest)))
			break
		}
		typ := le.Uint32(rest)
		length := le.Uint32(rest[4:])
		if length == 0 {
			out = append(out, newZeroLength(id, typ))
			break
		}
		if uint64(length) > uint64(len(rest)) {
			out = append(out, newTruncated(id, typ, bytes.Clone(rest), int(length)))
			break
		}

		b, err := decodeOne(id, typ, bytes.Clone(rest[:length]), ctx)
		if err != nil {
			return out, err
		}
		out = append(out, b)
		if b.Err() != ErrNone {
			break
		}
		pos += int(length)
		id++
	}
	return out, nil
}

func decodeOne(id int, typ uint32, raw []byte, ctx *decodeContext) (Block, error) {
	switch typ {
	case TypeSectionHeader:
		return parseSectionHeader(id, raw)
	case TypeInterfaceDescription:
		d, err := parseInterfaceDescription(id, raw, ctx.catalog)
		if err == nil && d.Err() == ErrNone {
			ctx.interfaces = append(ctx.interfaces, d.LinkType)
		}
		return d, err
	case TypeEnhancedPacket:
		return parseEnhancedPacket(id, raw, ctx)
	default:
		if len(raw) < frameSize {
			g := &Generic{base: newBase(id, typ, raw)}
			g.fail(ErrTruncated, tooShort(len(raw), frameSize))
			return g, nil
		}
		return newGeneric(id, typ, raw)
	}
}
