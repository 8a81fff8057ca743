package block

import (
	"encoding/binary"
	"fmt"
)

const (
	enhancedPacketFields = 20
	enhancedPacketSize   = frameSize + enhancedPacketFields
	packetDataOffset     = headerSize + enhancedPacketFields
)

type EnhancedPacket struct {
	base
	InterfaceID    uint32
	TimestampHigh  uint32
	TimestampLow   uint32
	CapturedLength uint32
	OriginalLength uint32

	// LinkType is only meaningful when KnownInterface is set.
	LinkType       uint16
	KnownInterface bool
	LinkTypeName   string

	// SubHeader names the link-type layout spliced before the packet data,
	// empty when none applies.
	SubHeader string
}

func (p *EnhancedPacket) Kind() Kind { return KindEnhancedPacket }

// Timestamp joins the two timestamp halves, in units of the interface's
// timestamp resolution.
func (p *EnhancedPacket) Timestamp() uint64 {
	return uint64(p.TimestampHigh)<<32 | uint64(p.TimestampLow)
}

func (p *EnhancedPacket) Title() string {
	if p.failed() {
		return p.errTitle()
	}
	title := p.prefix() + p.Kind().String() + " - " + p.LinkTypeName
	if p.SubHeader != "" {
		title += " [" + p.SubHeader + "]"
	}
	return title + fmt.Sprintf(" (%d bytes)", p.CapturedLength)
}

func parseEnhancedPacket(id int, raw []byte, ctx *decodeContext) (*EnhancedPacket, error) {
	p := &EnhancedPacket{base: newBase(id, TypeEnhancedPacket, raw)}
	if len(raw) < enhancedPacketSize {
		p.fail(ErrTruncated, tooShort(len(raw), enhancedPacketSize))
		return p, nil
	}
	le := binary.LittleEndian
	p.InterfaceID = le.Uint32(raw[8:])
	p.TimestampHigh = le.Uint32(raw[12:])
	p.TimestampLow = le.Uint32(raw[16:])
	p.CapturedLength = le.Uint32(raw[20:])
	p.OriginalLength = le.Uint32(raw[24:])

	var layout Layout
	var hasLayout bool
	if linkType, ok := ctx.linkType(p.InterfaceID); ok {
		p.LinkType = linkType
		p.KnownInterface = true
		p.LinkTypeName = ctx.catalog.LinkTypeName(linkType)
		layout, hasLayout = ctx.catalog.Layout(linkType)
	} else {
		p.LinkTypeName = fmt.Sprintf("Unknown interface %d", p.InterfaceID)
	}

	available := len(raw) - enhancedPacketSize
	captured := int(p.CapturedLength)
	if p.CapturedLength > uint32(available) {
		p.fail(ErrTruncated, fmt.Sprintf("Captured length %d exceeds the %d bytes available", p.CapturedLength, available))
		return p, nil
	}
	if hasLayout && layout.Size() > captured {
		p.fail(ErrTruncated, fmt.Sprintf("Captured length %d shorter than the %d byte %s sub-header", captured, layout.Size(), layout.Name))
		return p, nil
	}

	body := []Section{
		{Label: fmt.Sprintf("Interface ID - %d", p.InterfaceID), Length: 4},
		// both halves show the joined timestamp
		{Label: fmt.Sprintf("Timestamp High - %d (%d)", p.TimestampHigh, p.Timestamp()), Length: 4},
		{Label: fmt.Sprintf("Timestamp Low - %d (%d)", p.TimestampLow, p.Timestamp()), Length: 4},
		{Label: fmt.Sprintf("Captured Length - %d", p.CapturedLength), Length: 4},
		{Label: fmt.Sprintf("Original Length - %d", p.OriginalLength), Length: 4},
	}
	data := raw[packetDataOffset : packetDataOffset+captured]
	sub := 0
	if hasLayout {
		p.SubHeader = layout.Name
		for _, f := range layout.Fields {
			body = append(body, Section{
				Label:  fmt.Sprintf("%s - %d", f.Label, fieldValue(data[sub:sub+f.Length])),
				Length: f.Length,
			})
			sub += f.Length
		}
	}
	body = append(body, Section{Label: "Data", Length: captured - sub})

	pad := (4 - captured%4) % 4
	if pad > available-captured {
		pad = available - captured
	}
	body = append(body, Section{Label: "Padding", Length: pad})

	opts := raw[packetDataOffset+captured+pad : len(raw)-trailerSize]
	body = append(body, optionSections(opts, packetOptions)...)
	p.sections = frame(body...)
	return p, checkSections(&p.base)
}

// fieldValue reads up to the first eight bytes of b as a little-endian
// unsigned integer.
func fieldValue(b []byte) uint64 {
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint64(buf[:])
}
