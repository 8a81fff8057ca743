package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesPerRow(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, 1},
		{1, 1},
		{2, 1},
		{3, 1},
		{5, 2},
		{6, 2},
		{8, 3},
		{47, 16},
		{80, 27},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BytesPerRow(tt.width), "width %d", tt.width)
	}
}

func TestRows(t *testing.T) {
	blocks, err := Decode(rawBlock(TypeInterfaceDescription, interfaceBody(1, 0)), nil)
	require.NoError(t, err)
	b := blocks[0]

	require.Equal(t, 20, b.Length())
	require.Equal(t, 2, b.Rows(80)) // 20 bytes in one row of 27, plus title
	require.Equal(t, 3, b.Rows(47)) // 16 + 4
	require.Equal(t, 11, b.Rows(5)) // 2 per row
	require.Equal(t, 21, b.Rows(3)) // 1 per row
	require.Equal(t, 1, newZeroLength(0, 0).Rows(80))
}

func TestLabelAt(t *testing.T) {
	blocks, err := Decode(rawBlock(TypeInterfaceDescription, interfaceBody(1, 65535)), nil)
	require.NoError(t, err)
	b := blocks[0]
	const width = 23 // 8 bytes per row

	t.Run("title row", func(t *testing.T) {
		require.Equal(t, b.Title(), LabelAt(b, width, 0, 0))
		require.Equal(t, b.Title(), LabelAt(b, width, 17, 0))
	})

	t.Run("fields", func(t *testing.T) {
		require.Equal(t, "Block Type", LabelAt(b, width, 0, 1))
		require.Equal(t, "Block Type", LabelAt(b, width, 11, 1))
		require.Equal(t, "Block Length", LabelAt(b, width, 12, 1))
		require.Equal(t, "Block Length", LabelAt(b, width, 22, 1))
		require.Equal(t, "Link Type - Ethernet", LabelAt(b, width, 0, 2))
		require.Equal(t, "Reserved", LabelAt(b, width, 6, 2))
		require.Equal(t, "Snap Length - 65535", LabelAt(b, width, 12, 2))
		require.Equal(t, "Block Length", LabelAt(b, width, 0, 3))
		require.Equal(t, "Block Length", LabelAt(b, width, 9, 3))
	})

	t.Run("out of range", func(t *testing.T) {
		require.Empty(t, LabelAt(b, width, 12, 3))
		require.Empty(t, LabelAt(b, width, 0, 40))
		require.Empty(t, LabelAt(b, width, -1, 1))
		require.Empty(t, LabelAt(b, width, 0, -1))
	})

	t.Run("partial trailing column", func(t *testing.T) {
		// width 10 holds 3 bytes in columns 0-8; column 9 is not a byte cell
		require.Equal(t, "Block Type", LabelAt(b, 10, 8, 1))
		require.Empty(t, LabelAt(b, 10, 9, 1))
	})
}

func TestErrorBlockTitles(t *testing.T) {
	require.Equal(t, "4: ERROR Block has zero length", newZeroLength(4, 0).Title())
	tr := newTruncated(2, TypeEnhancedPacket, make([]byte, 10), 64)
	require.Equal(t, "2: ERROR Block truncated (64 bytes declared, 10 available)", tr.Title())
	require.Equal(t, 64, tr.DeclaredLength())
	require.Equal(t, 10, tr.Length())
	require.Equal(t, []Section{{Label: "Unreadable", Length: 10}}, tr.Sections())
	require.Equal(t, tr.Title(), LabelAt(tr, 80, 3, 0))
}
