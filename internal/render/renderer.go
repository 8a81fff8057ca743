package render

import (
	"ngview/internal/block"
)

const hexDigits = "0123456789ABCDEF"

// Renderer draws one block at a time onto a canvas.
type Renderer struct {
	// ASCII swaps hex pairs for printable-or-dot glyphs.
	ASCII bool
}

// Draw renders b from canvas row top using at most height rows and returns
// the rows consumed. hidden data rows are skipped; the title row is always
// drawn. Each byte takes three columns: two glyph columns and a separator.
func (r *Renderer) Draw(c *Canvas, top int, b block.Block, height, hidden int, folded bool) int {
	if height <= 0 {
		return 0
	}
	if b.Err() != block.ErrNone {
		c.Text(0, top, b.Title(), PaintError)
		return 1
	}
	c.Text(0, top, b.Title(), PaintTitle)
	if folded || height == 1 {
		return 1
	}

	raw := b.Raw()
	length := min(b.Length(), len(raw))
	bpr := block.BytesPerRow(c.Width())
	dataRows := (length + bpr - 1) / bpr
	hidden = max(hidden, 0)

	rows := min(height-1, dataRows-hidden)
	if rows <= 0 {
		return 1
	}
	start := hidden * bpr
	end := min(length, (hidden+rows)*bpr)

	sections := b.Sections()
	idx, secEnd := sectionAt(sections, start)
	for off := start; off < end; off++ {
		for off >= secEnd && idx+1 < len(sections) {
			idx++
			secEnd += sections[idx].Length
		}
		rel := off - start
		row := top + 1 + rel/bpr
		col := rel % bpr * 3

		hi, lo := r.glyph(raw[off])
		c.Set(col, row, hi, Paint(idx))
		c.Set(col+1, row, lo, Paint(idx))
		if rel%bpr < bpr-1 && off+1 < end && off+1 < secEnd {
			c.Set(col+2, row, ' ', Paint(idx))
		}
	}
	return 1 + rows
}

func (r *Renderer) glyph(v byte) (rune, rune) {
	if r.ASCII {
		if v >= 33 && v <= 126 {
			return rune(v), ' '
		}
		return '.', ' '
	}
	return rune(hexDigits[v>>4]), rune(hexDigits[v&0x0F])
}

// sectionAt returns the index of the section holding offset and the offset
// at which that section ends.
func sectionAt(sections []block.Section, offset int) (int, int) {
	end := 0
	for i, s := range sections {
		end += s.Length
		if offset < end {
			return i, end
		}
	}
	return len(sections) - 1, end
}
