package viewport

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngview/internal/block"
	"ngview/internal/block/blocktest"
	"ngview/internal/render"
)

func rowsOf(c *render.Canvas) []string {
	out := make([]string, c.Height())
	for i := range out {
		out[i] = c.Row(i)
	}
	return out
}

func TestJumpBottomThenTop(t *testing.T) {
	blocks := blocktest.Blocks(t, make([]byte, 40), make([]byte, 100), make([]byte, 7))
	v := New(blocks, nil)
	v.Resize(47, 10)

	want := 0
	for _, b := range blocks[:len(blocks)-1] {
		want += b.Rows(47) + 1
	}
	v.JumpBottom()
	require.Equal(t, want, v.Offset())
	require.LessOrEqual(t, v.Offset(), v.MaxOffset())

	c := v.Draw()
	require.Equal(t, blocks[len(blocks)-1].Title(), strings.TrimRight(c.Row(0), " "))

	v.JumpTop()
	require.Equal(t, 0, v.Offset())
}

func TestMaxOffset(t *testing.T) {
	blocks := blocktest.Blocks(t, make([]byte, 10))
	v := New(blocks, nil)
	v.Resize(80, 10)

	total := 0
	for _, b := range blocks {
		total += b.Rows(80) + 1
	}
	require.Equal(t, total-2, v.MaxOffset())

	// scrolling past the end clamps
	for i := 0; i < total*2; i++ {
		v.HalfPage(Down)
	}
	require.Equal(t, v.MaxOffset(), v.Offset())
	c := v.Draw()
	require.NotEmpty(t, strings.TrimSpace(c.Row(0)), "last row of the last block stays visible")

	require.Zero(t, New(nil, nil).MaxOffset())
}

func TestResizeRecomputesRows(t *testing.T) {
	blocks := blocktest.Blocks(t, make([]byte, 200))
	v := New(blocks, nil)

	v.Resize(80, 10)
	wide := v.MaxOffset()
	v.Resize(23, 10)
	narrow := v.MaxOffset()
	require.Greater(t, narrow, wide)
}

func TestFoldIsIdempotent(t *testing.T) {
	blocks := blocktest.Blocks(t, make([]byte, 64))
	v := New(blocks, nil)
	v.Resize(47, 30)

	before := rowsOf(v.Draw())
	maxBefore := v.MaxOffset()

	v.FoldToggle()
	require.True(t, v.Folded(0))
	folded := v.Draw()
	require.Equal(t, blocks[1].Title(), strings.TrimRight(folded.Row(2), " "), "title, separator, next block")

	v.FoldToggle()
	require.False(t, v.Folded(0))
	require.Equal(t, before, rowsOf(v.Draw()))
	require.Equal(t, maxBefore, v.MaxOffset())
}

func TestFoldBeforeDrawIsNoop(t *testing.T) {
	blocks := blocktest.Blocks(t, make([]byte, 8))
	v := New(blocks, nil)

	v.Resize(80, 20)
	v.FoldToggle()
	require.False(t, v.Folded(0))

	v.Draw()
	v.Resize(60, 20)
	v.FoldToggle()
	require.False(t, v.Folded(0))

	v.Draw()
	v.FoldToggle()
	require.True(t, v.Folded(0))
}

func TestFoldSnapsPartialTopBlock(t *testing.T) {
	blocks := blocktest.Blocks(t, make([]byte, 64))
	v := New(blocks, nil)
	v.Resize(47, 4)

	v.Apply(CmdHalfPageDown)
	require.Equal(t, 2, v.Offset())
	c := v.Draw()
	require.Equal(t, blocks[0].Title(), strings.TrimRight(c.Row(0), " "), "title stays on top")

	v.Apply(CmdFold)
	require.True(t, v.Folded(0))
	require.Equal(t, 0, v.Offset())
}

func TestDrawWalk(t *testing.T) {
	blocks := blocktest.Blocks(t, make([]byte, 16))
	const width = 47
	v := New(blocks, nil)
	v.Resize(width, 40)
	first := blocks[0].Rows(width)

	t.Run("partially hidden block", func(t *testing.T) {
		v.setOffset(1)
		c := v.Draw()
		require.Equal(t, blocks[0].Title(), strings.TrimRight(c.Row(0), " "))
		b, row, ok := v.Locate(0, 1)
		require.True(t, ok)
		require.Equal(t, 0, b.ID())
		require.Equal(t, 2, row, "first data row is hidden")
	})

	t.Run("leading separator", func(t *testing.T) {
		v.setOffset(first)
		c := v.Draw()
		require.Empty(t, strings.TrimSpace(c.Row(0)))
		_, _, ok := v.Locate(0, 0)
		require.False(t, ok)
		b, row, ok := v.Locate(0, 1)
		require.True(t, ok)
		require.Equal(t, 1, b.ID())
		require.Equal(t, 0, row)
	})

	t.Run("separator rows miss", func(t *testing.T) {
		v.setOffset(0)
		v.Draw()
		_, _, ok := v.Locate(0, first)
		require.False(t, ok)
		b, _, ok := v.Locate(0, first+1)
		require.True(t, ok)
		require.Equal(t, 1, b.ID())
	})

	t.Run("columns outside the area miss", func(t *testing.T) {
		_, _, ok := v.Locate(width, 0)
		require.False(t, ok)
		_, _, ok = v.Locate(-1, 0)
		require.False(t, ok)
	})
}

func TestDrawStopsWithOneRowLeft(t *testing.T) {
	blocks := blocktest.Blocks(t)
	v := New(blocks, nil)

	// a single row still shows the top block's title
	v.Resize(80, 1)
	c := v.Draw()
	require.Equal(t, blocks[0].Title(), strings.TrimRight(c.Row(0), " "))
	b, row, ok := v.Locate(0, 0)
	require.True(t, ok)
	require.Equal(t, 0, b.ID())
	require.Equal(t, 0, row)
	require.Equal(t, blocks[0].Title(), v.Detail())

	// a 28 byte section header fits one data row at this width; the row
	// after it is left empty
	v.Resize(100, 3)
	c = v.Draw()
	require.Equal(t, blocks[0].Title(), strings.TrimRight(c.Row(0), " "))
	require.NotEmpty(t, strings.TrimSpace(c.Row(1)))
	require.Empty(t, strings.TrimSpace(c.Row(2)))

	// one row past the separator is enough for the next title
	v.Resize(100, 4)
	c = v.Draw()
	require.Empty(t, strings.TrimSpace(c.Row(2)))
	require.Equal(t, blocks[1].Title(), strings.TrimRight(c.Row(3), " "))
}

func TestDetail(t *testing.T) {
	blocks := blocktest.Blocks(t)
	v := New(blocks, nil)
	v.Resize(80, 20)
	v.Draw()

	require.Equal(t, blocks[0].Title(), v.Detail())
	v.Move(Down)
	require.Equal(t, "Block Type", v.Detail())
	for i := 0; i < 4; i++ {
		v.Move(Right)
	}
	require.Equal(t, "Block Type", v.Detail())
	for i := 0; i < 8; i++ {
		v.Move(Right)
	}
	require.Equal(t, "Block Length", v.Detail())

	// below the last block
	for i := 0; i < 19; i++ {
		v.Move(Down)
	}
	v.Draw()
	require.Empty(t, v.Detail())
}

func TestMoveScrollsAtEdges(t *testing.T) {
	blocks := blocktest.Blocks(t, make([]byte, 300))
	v := New(blocks, nil)
	v.Resize(47, 5)

	v.Move(Up)
	require.Equal(t, 0, v.Offset(), "offset never goes below zero")

	for i := 0; i < 4; i++ {
		v.Move(Down)
	}
	_, row := v.Cursor()
	require.Equal(t, 4, row)
	require.Equal(t, 0, v.Offset())

	v.Move(Down)
	_, row = v.Cursor()
	require.Equal(t, 4, row)
	require.Equal(t, 1, v.Offset())

	v.Move(Left)
	col, _ := v.Cursor()
	require.Equal(t, 0, col)
	for i := 0; i < 100; i++ {
		v.Move(Right)
	}
	col, _ = v.Cursor()
	require.Equal(t, 46, col)
}

func TestToggleASCII(t *testing.T) {
	blocks := blocktest.Blocks(t, []byte("hello, world"))
	v := New(blocks, nil)
	v.Resize(47, 30)

	hex := v.Draw()
	maxOffset := v.MaxOffset()

	v.Apply(CmdToggleASCII)
	require.True(t, v.ASCII())
	asc := v.Draw()
	require.Equal(t, maxOffset, v.MaxOffset())
	require.NotEqual(t, rowsOf(hex), rowsOf(asc))
	for row := 0; row < hex.Height(); row++ {
		for col := 0; col < hex.Width(); col++ {
			require.Equal(t, hex.PaintAt(col, row), asc.PaintAt(col, row))
		}
	}
}

func TestErrorBlockIsOneRow(t *testing.T) {
	// a truncated packet block after the section and interface headers
	raw := append(blocktest.Capture(t), 6, 0, 0, 0, 0xFF, 0, 0, 0, 1, 2)
	blocks, err := block.Decode(raw, nil)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	v := New(blocks, nil)
	v.Resize(80, 40)
	v.JumpBottom()
	c := v.Draw()
	require.Contains(t, c.Row(0), "ERROR Block truncated")
	require.Empty(t, strings.TrimSpace(c.Row(1)))
	assert.Equal(t, render.PaintError, c.PaintAt(0, 0))
}

func TestCursorStaysInBounds(t *testing.T) {
	blocks := blocktest.Blocks(t, make([]byte, 64), make([]byte, 3), make([]byte, 500))
	v := New(blocks, nil)
	rng := rand.New(rand.NewPCG(1, 2))

	cmds := []Command{CmdUp, CmdDown, CmdLeft, CmdRight, CmdHalfPageUp, CmdHalfPageDown, CmdFold, CmdToggleASCII, CmdTop, CmdBottom}
	v.Resize(60, 20)
	for i := 0; i < 5000; i++ {
		if rng.IntN(50) == 0 {
			v.Resize(3+rng.IntN(120), 1+rng.IntN(50))
		}
		v.Apply(cmds[rng.IntN(len(cmds))])
		v.Draw()

		col, row := v.Cursor()
		require.GreaterOrEqual(t, col, 0)
		require.GreaterOrEqual(t, row, 0)
		require.Less(t, col, v.Width())
		require.Less(t, row, v.Height())
		require.GreaterOrEqual(t, v.Offset(), 0)
		require.LessOrEqual(t, v.Offset(), v.MaxOffset())
		_ = v.Detail()
	}
}
