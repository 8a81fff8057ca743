package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"ngview/internal/config"
)

// Paint selects the style of a cell. Non-negative values are section
// indexes into the theme palette.
type Paint int

const (
	PaintPlain Paint = -(iota + 1)
	PaintTitle
	PaintError
	paintCursor
)

// A cell whose rune is 0 is covered by the wide glyph to its left and is
// not written out.
type cell struct {
	r rune
	p Paint
}

// Canvas is a fixed grid of styled cells. Writes outside the grid are
// dropped.
type Canvas struct {
	width, height int
	cells         [][]cell

	cursorCol, cursorRow int
	cursor               bool
}

func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{width: width, height: height, cells: make([][]cell, height)}
	for i := range c.cells {
		row := make([]cell, width)
		for j := range row {
			row[j] = cell{r: ' ', p: PaintPlain}
		}
		c.cells[i] = row
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) Set(col, row int, r rune, p Paint) {
	if col < 0 || row < 0 || col >= c.width || row >= c.height {
		return
	}
	c.cells[row][col] = cell{r: r, p: p}
}

// Text writes s from (col, row), cutting it at the right edge with an
// ellipsis. Wide glyphs take two cells. It returns the number of columns
// written.
func (c *Canvas) Text(col, row int, s string, p Paint) int {
	if row < 0 || row >= c.height || col >= c.width {
		return 0
	}
	room := c.width - col
	if ansi.StringWidth(s) > room {
		s = ansi.Truncate(s, room, "…")
	}
	n := 0
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		c.Set(col+n, row, r, p)
		for i := 1; i < w; i++ {
			c.Set(col+n+i, row, 0, p)
		}
		n += w
	}
	return n
}

// SetCursor marks the cell drawn with the cursor style.
func (c *Canvas) SetCursor(col, row int) {
	c.cursorCol, c.cursorRow = col, row
	c.cursor = true
}

// Row returns the unstyled text of row i.
func (c *Canvas) Row(i int) string {
	if i < 0 || i >= c.height {
		return ""
	}
	var b strings.Builder
	for _, cl := range c.cells[i] {
		if cl.r != 0 {
			b.WriteRune(cl.r)
		}
	}
	return b.String()
}

// PaintAt returns the paint of a cell, or PaintPlain outside the grid.
func (c *Canvas) PaintAt(col, row int) Paint {
	if col < 0 || row < 0 || col >= c.width || row >= c.height {
		return PaintPlain
	}
	return c.cells[row][col].p
}

// Render styles the grid, one line per row. Adjacent cells that share a
// paint are rendered as one run.
func (c *Canvas) Render(styles *config.Styles) string {
	lines := make([]string, c.height)
	for i, row := range c.cells {
		var b, run strings.Builder
		current := PaintPlain
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == PaintPlain {
				b.WriteString(run.String())
			} else {
				b.WriteString(styleOf(styles, current).Render(run.String()))
			}
			run.Reset()
		}
		for j, cl := range row {
			p := cl.p
			if c.cursor && i == c.cursorRow && j == c.cursorCol {
				p = paintCursor
			}
			if p != current {
				flush()
				current = p
			}
			if cl.r != 0 {
				run.WriteRune(cl.r)
			}
		}
		flush()
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func styleOf(s *config.Styles, p Paint) lipgloss.Style {
	switch p {
	case PaintTitle:
		return s.Title
	case PaintError:
		return s.Error
	case paintCursor:
		return s.Cursor
	case PaintPlain:
		return s.Normal
	default:
		return s.Section(int(p))
	}
}
