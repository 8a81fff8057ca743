// Package viewport decides which blocks and rows of a decoded capture are
// visible in a drawing area and keeps the scroll, fold and cursor state that
// navigation commands act on.
//
// Blocks are stacked top to bottom with one blank separator row after each.
// The scroll offset counts rows of that stack hidden above the area. A block
// that is only partly scrolled off keeps its title row on screen and loses
// data rows instead.
package viewport

import (
	"log"

	"ngview/internal/block"
	"ngview/internal/render"
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Command is one discrete navigation input.
type Command int

const (
	CmdUp Command = iota
	CmdDown
	CmdLeft
	CmdRight
	CmdHalfPageUp
	CmdHalfPageDown
	CmdFold
	CmdToggleASCII
	CmdTop
	CmdBottom
)

// extent records where one block landed in the most recent draw.
type extent struct {
	id     int
	top    int
	rows   int
	hidden int
}

type Viewport struct {
	blocks   []block.Block
	renderer *render.Renderer

	width, height int
	offset        int
	cursorCol     int
	cursorRow     int

	folded map[int]bool
	rows   map[int]int

	extents []extent
	drawn   bool
}

// New returns a viewport over blocks. A nil renderer starts in hex mode.
func New(blocks []block.Block, r *render.Renderer) *Viewport {
	if r == nil {
		r = &render.Renderer{}
	}
	return &Viewport{
		blocks:   blocks,
		renderer: r,
		folded:   make(map[int]bool),
		rows:     make(map[int]int),
	}
}

func (v *Viewport) Blocks() []block.Block { return v.blocks }
func (v *Viewport) Offset() int           { return v.offset }
func (v *Viewport) Width() int            { return v.width }
func (v *Viewport) Height() int           { return v.height }
func (v *Viewport) ASCII() bool           { return v.renderer.ASCII }
func (v *Viewport) Folded(id int) bool    { return v.folded[id] }

// Cursor returns the cursor cell relative to the drawing area.
func (v *Viewport) Cursor() (col, row int) {
	return v.cursorCol, v.cursorRow
}

// Resize sets the drawing area. Row counts are dropped on a width change
// and folding is disabled until the next Draw.
func (v *Viewport) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width != v.width {
		clear(v.rows)
	}
	v.width, v.height = width, height
	v.cursorCol = clamp(v.cursorCol, 0, width-1)
	v.cursorRow = clamp(v.cursorRow, 0, height-1)
	v.drawn = false
	v.extents = v.extents[:0]
	v.offset = clamp(v.offset, 0, v.MaxOffset())
	log.Printf("viewport: resize %dx%d, offset %d", width, height, v.offset)
}

// rowCount is the cached display height of b; folded blocks are one row.
func (v *Viewport) rowCount(b block.Block) int {
	id := b.ID()
	if n, ok := v.rows[id]; ok {
		return n
	}
	n := 1
	if !v.folded[id] {
		n = b.Rows(v.width)
	}
	v.rows[id] = n
	return n
}

// MaxOffset is the largest scroll offset: the one that leaves only the last
// row of the last block on screen.
func (v *Viewport) MaxOffset() int {
	total := 0
	for _, b := range v.blocks {
		total += v.rowCount(b) + 1
	}
	return max(total-2, 0)
}

func (v *Viewport) setOffset(offset int) {
	v.offset = clamp(offset, 0, v.MaxOffset())
}

// Move steps the cursor one cell. At the top or bottom edge the view
// scrolls by one row instead.
func (v *Viewport) Move(dir Direction) {
	switch dir {
	case Up:
		if v.cursorRow > 0 {
			v.cursorRow--
		} else {
			v.setOffset(v.offset - 1)
		}
	case Down:
		if v.cursorRow < v.height-1 {
			v.cursorRow++
		} else {
			v.setOffset(v.offset + 1)
		}
	case Left:
		v.cursorCol = max(v.cursorCol-1, 0)
	case Right:
		v.cursorCol = clamp(v.cursorCol+1, 0, v.width-1)
	}
}

// HalfPage scrolls by half the area height. Only Up and Down apply.
func (v *Viewport) HalfPage(dir Direction) {
	switch dir {
	case Up:
		v.setOffset(v.offset - v.height/2)
	case Down:
		v.setOffset(v.offset + v.height/2)
	}
}

func (v *Viewport) JumpTop() {
	v.offset = 0
}

// JumpBottom scrolls so the last block starts at the top of the area.
func (v *Viewport) JumpBottom() {
	total := 0
	for i, b := range v.blocks {
		if i == len(v.blocks)-1 {
			break
		}
		total += v.rowCount(b) + 1
	}
	v.setOffset(total)
}

// FoldToggle folds or unfolds the block under the cursor as it was placed
// by the last Draw. It does nothing before the first Draw after a resize.
func (v *Viewport) FoldToggle() {
	if !v.drawn {
		return
	}
	e, _, ok := v.locate(v.cursorCol, v.cursorRow)
	if !ok {
		return
	}
	if v.folded[e.id] {
		delete(v.folded, e.id)
		delete(v.rows, e.id)
		log.Printf("viewport: unfold block %d", e.id)
	} else {
		v.folded[e.id] = true
		v.rows[e.id] = 1
		// the block's title is on screen, so its hidden rows fold away
		v.offset -= e.hidden
		log.Printf("viewport: fold block %d", e.id)
	}
	v.setOffset(v.offset)
}

func (v *Viewport) ToggleASCII() {
	v.renderer.ASCII = !v.renderer.ASCII
}

func (v *Viewport) Apply(cmd Command) {
	switch cmd {
	case CmdUp:
		v.Move(Up)
	case CmdDown:
		v.Move(Down)
	case CmdLeft:
		v.Move(Left)
	case CmdRight:
		v.Move(Right)
	case CmdHalfPageUp:
		v.HalfPage(Up)
	case CmdHalfPageDown:
		v.HalfPage(Down)
	case CmdFold:
		v.FoldToggle()
	case CmdToggleASCII:
		v.ToggleASCII()
	case CmdTop:
		v.JumpTop()
	case CmdBottom:
		v.JumpBottom()
	}
}

// Draw renders the visible part of the block stack and records where each
// block landed. The first visible block is always drawn; drawing stops once a
// block leaves fewer than two rows of area below it.
func (v *Viewport) Draw() *render.Canvas {
	c := render.NewCanvas(v.width, v.height)
	v.extents = v.extents[:0]

	consumed := v.offset
	row := 0
	for _, b := range v.blocks {
		if row >= v.height {
			break
		}
		n := v.rowCount(b)
		if consumed >= n+1 {
			consumed -= n + 1
			continue
		}
		if consumed == n {
			// only the separator below this block is left
			consumed = 0
			row++
			continue
		}
		hidden := consumed
		consumed = 0

		drawn := v.renderer.Draw(c, row, b, v.height-row, hidden, v.folded[b.ID()])
		v.extents = append(v.extents, extent{id: b.ID(), top: row, rows: drawn, hidden: hidden})
		if v.height-(row+drawn) < 2 {
			break
		}
		row += drawn + 1
	}

	if v.width > 0 && v.height > 0 {
		c.SetCursor(v.cursorCol, v.cursorRow)
	}
	v.drawn = true
	return c
}

// Locate maps an area cell to the block drawn there and the block-relative
// row LabelAt expects. Separator rows and rows below the last block miss.
func (v *Viewport) Locate(col, row int) (block.Block, int, bool) {
	e, blockRow, ok := v.locate(col, row)
	if !ok {
		return nil, 0, false
	}
	return v.blocks[e.id], blockRow, true
}

func (v *Viewport) locate(col, row int) (extent, int, bool) {
	if col < 0 || col >= v.width || row < 0 {
		return extent{}, 0, false
	}
	for _, e := range v.extents {
		if row < e.top {
			break
		}
		rel := row - e.top
		if rel >= e.rows {
			continue
		}
		if rel == 0 {
			return e, 0, true
		}
		return e, rel + e.hidden, true
	}
	return extent{}, 0, false
}

// Detail is the label of the field under the cursor.
func (v *Viewport) Detail() string {
	b, row, ok := v.Locate(v.cursorCol, v.cursorRow)
	if !ok {
		return ""
	}
	return block.LabelAt(b, v.width, v.cursorCol, row)
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(n, lo), hi)
}
