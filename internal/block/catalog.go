package block

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/gopacket/layers"
)

// ErrInvalidLayout is returned when a sub-header layout has an empty name
// or a field with a non-positive length.
var ErrInvalidLayout = errors.New("invalid sub-header layout")

// LinkTypeBluetoothLELLWithPHDR is the link type of Bluetooth LE link-layer
// captures that carry a pseudo-header in front of each packet.
const LinkTypeBluetoothLELLWithPHDR uint16 = 256

// Layout describes the fixed sub-header an Enhanced Packet carries in front
// of its data for one link type.
type Layout struct {
	Name     string
	LinkType uint16
	Fields   []Section
}

// Size is the total byte length of the layout's fields.
func (l Layout) Size() int {
	n := 0
	for _, f := range l.Fields {
		n += f.Length
	}
	return n
}

func (l Layout) validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("link type %d: empty name: %w", l.LinkType, ErrInvalidLayout)
	}
	for _, f := range l.Fields {
		if f.Length <= 0 {
			return fmt.Errorf("%s: field %q has length %d: %w", l.Name, f.Label, f.Length, ErrInvalidLayout)
		}
	}
	return nil
}

// Catalog holds the link-type knowledge the decoder consults: sub-header
// layouts and display names.
type Catalog struct {
	layouts map[uint16]Layout
	names   map[uint16]string
}

// NewCatalog returns a catalog preloaded with the built-in layouts.
func NewCatalog() *Catalog {
	c := &Catalog{
		layouts: make(map[uint16]Layout),
		names:   make(map[uint16]string),
	}
	c.layouts[LinkTypeBluetoothLELLWithPHDR] = Layout{
		Name:     "BLE LL PHDR",
		LinkType: LinkTypeBluetoothLELLWithPHDR,
		Fields: []Section{
			{Label: "RF Channel", Length: 1},
			{Label: "Signal Power", Length: 1},
			{Label: "Noise Power", Length: 1},
			{Label: "Access Address Offenses", Length: 1},
			{Label: "Reference Access Address", Length: 4},
			{Label: "Flags", Length: 2},
		},
	}
	return c
}

// AddLayout registers l, replacing any layout for the same link type.
func (c *Catalog) AddLayout(l Layout) error {
	if err := l.validate(); err != nil {
		return err
	}
	c.layouts[l.LinkType] = l
	return nil
}

// Layout returns the sub-header layout for a link type.
func (c *Catalog) Layout(linkType uint16) (Layout, bool) {
	l, ok := c.layouts[linkType]
	return l, ok
}

// SetLinkTypeName overrides the display name of a link type.
func (c *Catalog) SetLinkTypeName(code uint16, name string) {
	c.names[code] = name
}

// LinkTypeName resolves a display name for code: catalog overrides first,
// then the extended table, then gopacket's link-type names.
func (c *Catalog) LinkTypeName(code uint16) string {
	if name, ok := c.names[code]; ok {
		return name
	}
	if name, ok := extendedLinkTypes[code]; ok {
		return name
	}
	if code < 256 {
		if name := layers.LinkType(code).String(); name != "UnknownLinkType" {
			return name
		}
	}
	return fmt.Sprintf("Unknown (%d)", code)
}

// extendedLinkTypes covers link types gopacket does not name.
var extendedLinkTypes = map[uint16]string{
	147:                           "User 0",
	187:                           "Bluetooth HCI H4",
	195:                           "IEEE 802.15.4",
	201:                           "Bluetooth HCI H4 with PHDR",
	215:                           "IEEE 802.15.4 Non-ASK PHY",
	249:                           "USBPcap",
	251:                           "Bluetooth LE LL",
	252:                           "Wireshark Upper PDU",
	LinkTypeBluetoothLELLWithPHDR: "Bluetooth LE LL with PHDR",
	272:                           "Nordic BLE",
	276:                           "Linux SLL2",
}
