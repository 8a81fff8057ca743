package block

import (
	"encoding/binary"
	"fmt"
)

const (
	TypeSectionHeader        uint32 = 0x0A0D0D0A
	TypeInterfaceDescription uint32 = 0x00000001
	TypeEnhancedPacket       uint32 = 0x00000006

	// ByteOrderMagic reads back as itself in a little-endian section.
	ByteOrderMagic uint32 = 0x1A2B3C4D
)

const sectionHeaderSize = frameSize + 16

type SectionHeader struct {
	base
	Magic         uint32
	Major         uint16
	Minor         uint16
	SectionLength int64
}

func (s *SectionHeader) Kind() Kind { return KindSectionHeader }

// LittleEndian reports whether the byte-order magic marks a little-endian
// section.
func (s *SectionHeader) LittleEndian() bool { return s.Magic == ByteOrderMagic }

func (s *SectionHeader) Title() string {
	if s.failed() {
		return s.errTitle()
	}
	return fmt.Sprintf("%s%s - v%d.%d", s.prefix(), s.Kind(), s.Major, s.Minor)
}

func parseSectionHeader(id int, raw []byte) (*SectionHeader, error) {
	s := &SectionHeader{base: newBase(id, TypeSectionHeader, raw)}
	if len(raw) < sectionHeaderSize {
		s.fail(ErrTruncated, tooShort(len(raw), sectionHeaderSize))
		return s, nil
	}
	le := binary.LittleEndian
	s.Magic = le.Uint32(raw[8:])
	s.Major = le.Uint16(raw[12:])
	s.Minor = le.Uint16(raw[14:])
	s.SectionLength = int64(le.Uint64(raw[16:]))

	order := "little endian"
	if !s.LittleEndian() {
		order = fmt.Sprintf("unrecognized (0x%08X)", s.Magic)
	}
	sectionLength := fmt.Sprint(s.SectionLength)
	if s.SectionLength == -1 {
		sectionLength = "unspecified"
	}
	body := []Section{
		{Label: "Byte-Order Magic - " + order, Length: 4},
		{Label: fmt.Sprintf("Major Version - %d", s.Major), Length: 2},
		{Label: fmt.Sprintf("Minor Version - %d", s.Minor), Length: 2},
		{Label: "Section Length - " + sectionLength, Length: 8},
	}
	body = append(body, optionSections(raw[24:len(raw)-trailerSize], sectionHeaderOptions)...)
	s.sections = frame(body...)
	return s, checkSections(&s.base)
}

func tooShort(length, min int) string {
	return fmt.Sprintf("Block length %d below minimum of %d", length, min)
}
