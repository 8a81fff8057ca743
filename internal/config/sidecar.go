package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"ngview/internal/block"
)

// ErrInvalidSidecar is returned for sidecar files that parse as JSON but do
// not have the expected shape.
var ErrInvalidSidecar = errors.New("invalid sidecar")

// Sidecar is the optional JSON file that teaches the decoder extra
// Enhanced Packet sub-headers and link-type names.
type Sidecar struct {
	EnhancedPackets []PacketLayout `json:"enhanced_packets"`
	LinkTypes       []LinkTypeName `json:"link_types"`
}

type PacketLayout struct {
	Name     string  `json:"name"`
	LinkType uint16  `json:"linktype"`
	Sections []Field `json:"sections"`
}

// Field is a [label, length] pair.
type Field struct {
	Label  string
	Length int
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("section %s: %w", data, ErrInvalidSidecar)
	}
	if len(pair) != 2 {
		return fmt.Errorf("section %s: want [label, length]: %w", data, ErrInvalidSidecar)
	}
	if err := json.Unmarshal(pair[0], &f.Label); err != nil {
		return fmt.Errorf("section label %s: %w", pair[0], ErrInvalidSidecar)
	}
	if err := json.Unmarshal(pair[1], &f.Length); err != nil {
		return fmt.Errorf("section length %s: %w", pair[1], ErrInvalidSidecar)
	}
	return nil
}

// LinkTypeName is a [code, name] pair.
type LinkTypeName struct {
	Code uint16
	Name string
}

func (l *LinkTypeName) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("link type %s: %w", data, ErrInvalidSidecar)
	}
	if len(pair) != 2 {
		return fmt.Errorf("link type %s: want [code, name]: %w", data, ErrInvalidSidecar)
	}
	if err := json.Unmarshal(pair[0], &l.Code); err != nil {
		return fmt.Errorf("link type code %s: %w", pair[0], ErrInvalidSidecar)
	}
	if err := json.Unmarshal(pair[1], &l.Name); err != nil {
		return fmt.Errorf("link type name %s: %w", pair[1], ErrInvalidSidecar)
	}
	return nil
}

func SidecarPath() string {
	return filepath.Join(ConfigDir(), "data.json")
}

// LoadSidecar reads the sidecar at path. An empty path means SidecarPath,
// which may be absent and then yields an empty sidecar.
func LoadSidecar(path string) (*Sidecar, error) {
	explicit := path != ""
	if !explicit {
		path = SidecarPath()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return &Sidecar{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sidecar: %w", err)
	}
	s, err := ParseSidecar(data)
	if err != nil {
		return nil, fmt.Errorf("parse sidecar %q: %w", path, err)
	}
	return s, nil
}

func ParseSidecar(data []byte) (*Sidecar, error) {
	var s Sidecar
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Catalog builds the decoder catalog: built-in layouts overlaid with the
// sidecar's. When the sidecar repeats a link type the first entry wins.
func (s *Sidecar) Catalog() (*block.Catalog, error) {
	cat := block.NewCatalog()
	seen := make(map[uint16]bool)
	for _, p := range s.EnhancedPackets {
		if seen[p.LinkType] {
			log.Printf("sidecar: ignoring duplicate layout %q for link type %d", p.Name, p.LinkType)
			continue
		}
		seen[p.LinkType] = true

		fields := make([]block.Section, len(p.Sections))
		for i, f := range p.Sections {
			fields[i] = block.Section{Label: f.Label, Length: f.Length}
		}
		if err := cat.AddLayout(block.Layout{Name: p.Name, LinkType: p.LinkType, Fields: fields}); err != nil {
			return nil, err
		}
	}
	for _, l := range s.LinkTypes {
		cat.SetLinkTypeName(l.Code, l.Name)
	}
	return cat, nil
}
