package block

import (
	"encoding/binary"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const optEndOfOpt = 0

type optionName struct {
	name string
	text bool
}

var commonOptions = map[uint16]optionName{
	1:     {"opt_comment", true},
	2988:  {"opt_custom", false},
	2989:  {"opt_custom", false},
	19372: {"opt_custom", false},
	19373: {"opt_custom", false},
}

var sectionHeaderOptions = map[uint16]optionName{
	2: {"shb_hardware", true},
	3: {"shb_os", true},
	4: {"shb_userappl", true},
}

var interfaceOptions = map[uint16]optionName{
	2:  {"if_name", true},
	3:  {"if_description", true},
	4:  {"if_IPv4addr", false},
	5:  {"if_IPv6addr", false},
	6:  {"if_MACaddr", false},
	7:  {"if_EUIaddr", false},
	8:  {"if_speed", false},
	9:  {"if_tsresol", false},
	10: {"if_tzone", false},
	11: {"if_filter", false},
	12: {"if_os", true},
	13: {"if_fcslen", false},
	14: {"if_tsoffset", false},
	15: {"if_hardware", true},
}

var packetOptions = map[uint16]optionName{
	2: {"epb_flags", false},
	3: {"epb_hash", false},
	4: {"epb_dropcount", false},
	5: {"epb_packetid", false},
	6: {"epb_queue", false},
	7: {"epb_verdict", false},
}

// optionSections splits an options area into one section per option TLV.
// Each option's padding is folded into its section. An area that is not a
// well-formed TLV list stays a single "Options" section.
func optionSections(data []byte, names map[uint16]optionName) []Section {
	if len(data) == 0 {
		return nil
	}
	whole := []Section{{Label: "Options", Length: len(data)}}
	var out []Section
	pos := 0
	for pos < len(data) {
		if len(data)-pos < 4 {
			return whole
		}
		code := binary.LittleEndian.Uint16(data[pos:])
		n := int(binary.LittleEndian.Uint16(data[pos+2:]))
		size := 4 + (n+3)&^3
		if pos+size > len(data) {
			return whole
		}
		if code == optEndOfOpt {
			out = append(out, Section{Label: "Option End", Length: len(data) - pos})
			return out
		}
		out = append(out, Section{
			Label:  optionLabel(code, data[pos+4:pos+4+n], names),
			Length: size,
		})
		pos += size
	}
	return out
}

func optionLabel(code uint16, value []byte, names map[uint16]optionName) string {
	opt, ok := names[code]
	if !ok {
		opt, ok = commonOptions[code]
	}
	if !ok {
		return "Option " + strconv.Itoa(int(code))
	}
	label := "Option " + opt.name
	if opt.text && printable(value) {
		label += " - " + string(value)
	}
	return label
}

func printable(value []byte) bool {
	if len(value) == 0 || !utf8.Valid(value) {
		return false
	}
	return strings.IndexFunc(string(value), func(r rune) bool { return !unicode.IsPrint(r) }) < 0
}
