package viewer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"ngview/internal/block/blocktest"
	"ngview/internal/buffer"
	"ngview/internal/config"
)

func newTestModel(t *testing.T, width, height int) *Model {
	t.Helper()
	raw := blocktest.Capture(t, []byte("GET / HTTP/1.1\r\n"), make([]byte, 90))
	blocks := blocktest.Blocks(t, []byte("GET / HTTP/1.1\r\n"), make([]byte, 90))
	m := NewModel(buffer.FromBytes("/tmp/capture.pcapng", raw), blocks, config.NewStyles(&config.DefaultConfig().Theme))
	if width > 0 {
		m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
	return m
}

func press(m *Model, s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case "ctrl+d":
		msg = tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		msg = tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func screen(m *Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

func TestViewBeforeSize(t *testing.T) {
	m := newTestModel(t, 0, 0)
	require.Equal(t, "Loading...", m.View())
}

func TestViewTooSmall(t *testing.T) {
	m := newTestModel(t, 4, 3)
	require.Equal(t, "Window too small", m.View())
}

func TestViewLayout(t *testing.T) {
	m := newTestModel(t, 80, 24)
	lines := screen(m)

	require.Len(t, lines, 24)
	require.Contains(t, lines[0], "capture.pcapng | 4 blocks")
	require.Contains(t, lines[2], "0: Section Header Block - v1.0")
	require.Contains(t, lines[len(lines)-1], "quit")

	// border takes one column on each side
	require.Equal(t, 78, m.Viewport().Width())
	require.Equal(t, 24-1-2-1-1, m.Viewport().Height())
}

func TestKeysDriveViewport(t *testing.T) {
	m := newTestModel(t, 80, 24)
	m.View()

	press(m, "j")
	_, row := m.Viewport().Cursor()
	require.Equal(t, 1, row)
	require.Contains(t, screen(m)[len(screen(m))-2], "Block Type")

	press(m, "l")
	col, _ := m.Viewport().Cursor()
	require.Equal(t, 1, col)

	press(m, "G")
	require.Positive(t, m.Viewport().Offset())
	press(m, "g")
	require.Zero(t, m.Viewport().Offset())

	press(m, "ctrl+d")
	require.Equal(t, m.Viewport().Height()/2, m.Viewport().Offset())
	press(m, "ctrl+u")
	require.Zero(t, m.Viewport().Offset())
}

func TestFoldKey(t *testing.T) {
	m := newTestModel(t, 80, 24)
	m.View()

	press(m, "f")
	require.True(t, m.Viewport().Folded(0))
	lines := screen(m)
	require.Contains(t, lines[4], "1: Interface Description Block - Ethernet")

	press(m, "f")
	require.False(t, m.Viewport().Folded(0))
}

func TestASCIIKey(t *testing.T) {
	m := newTestModel(t, 80, 24)
	hex := m.View()
	press(m, "a")
	require.True(t, m.Viewport().ASCII())
	require.NotEqual(t, hex, m.View())
	require.Contains(t, screen(m)[len(screen(m))-2], "ascii")
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, 100, 30)
	short := m.Viewport().Height()

	press(m, "?")
	require.Less(t, m.Viewport().Height(), short)
	view := ansi.Strip(m.View())
	require.Contains(t, view, "half page down")
	require.Len(t, strings.Split(view, "\n"), 30)

	press(m, "?")
	require.Equal(t, short, m.Viewport().Height())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, 80, 24)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	cmd = press(m, "ctrl+c")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	require.Nil(t, press(m, "j"))
}
