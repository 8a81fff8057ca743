package block

import (
	"encoding/binary"
	"fmt"
)

const interfaceDescriptionSize = frameSize + 8

type InterfaceDescription struct {
	base
	LinkType     uint16
	Reserved     uint16
	SnapLength   uint32
	LinkTypeName string
}

func (d *InterfaceDescription) Kind() Kind { return KindInterfaceDescription }

func (d *InterfaceDescription) Title() string {
	if d.failed() {
		return d.errTitle()
	}
	return d.prefix() + d.Kind().String() + " - " + d.LinkTypeName
}

func parseInterfaceDescription(id int, raw []byte, cat *Catalog) (*InterfaceDescription, error) {
	d := &InterfaceDescription{base: newBase(id, TypeInterfaceDescription, raw)}
	if len(raw) < interfaceDescriptionSize {
		d.fail(ErrTruncated, tooShort(len(raw), interfaceDescriptionSize))
		return d, nil
	}
	le := binary.LittleEndian
	d.LinkType = le.Uint16(raw[8:])
	d.Reserved = le.Uint16(raw[10:])
	d.SnapLength = le.Uint32(raw[12:])
	d.LinkTypeName = cat.LinkTypeName(d.LinkType)

	body := []Section{
		{Label: "Link Type - " + d.LinkTypeName, Length: 2},
		{Label: "Reserved", Length: 2},
		{Label: fmt.Sprintf("Snap Length - %d", d.SnapLength), Length: 4},
	}
	body = append(body, optionSections(raw[16:len(raw)-trailerSize], interfaceOptions)...)
	d.sections = frame(body...)
	return d, checkSections(&d.base)
}
