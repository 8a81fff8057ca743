package block

// LabelAt returns the label of the field under display cell (col, row) of b
// laid out at the given width. Row 0 is the title row. Cells that do not map
// to a byte of the block yield "".
func LabelAt(b Block, width, col, row int) string {
	if row == 0 {
		return b.Title()
	}
	if row < 0 || col < 0 {
		return ""
	}
	bpr := BytesPerRow(width)
	cell := col / 3
	if cell >= bpr {
		return ""
	}
	offset := (row-1)*bpr + cell
	for _, s := range b.Sections() {
		if offset < s.Length {
			return s.Label
		}
		offset -= s.Length
	}
	return ""
}
