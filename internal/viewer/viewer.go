package viewer

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"ngview/internal/block"
	"ngview/internal/buffer"
	"ngview/internal/config"
	"ngview/internal/viewport"
)

// borderSize is the rows and columns the hex area border takes.
const borderSize = 2

type Model struct {
	buf    *buffer.Buffer
	blocks []block.Block
	view   *viewport.Viewport
	styles *config.Styles

	help     help.Model
	showHelp bool

	width  int
	height int
}

func NewModel(buf *buffer.Buffer, blocks []block.Block, styles *config.Styles) *Model {
	return &Model{
		buf:    buf,
		blocks: blocks,
		view:   viewport.New(blocks, nil),
		styles: styles,
		help:   help.New(),
	}
}

// Viewport exposes the navigation state.
func (m *Model) Viewport() *viewport.Viewport {
	return m.view
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		log.Printf("viewer: quit")
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize()
		return m, nil
	}

	for _, c := range commands {
		if key.Matches(msg, *c.binding) {
			m.view.Apply(c.cmd)
			break
		}
	}
	return m, nil
}

// resize hands the viewport whatever the header, border, status line and
// help leave over.
func (m *Model) resize() {
	chrome := 1 + borderSize + 1 + lipgloss.Height(m.help.View(keys))
	m.view.Resize(m.width-borderSize, m.height-chrome)
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.view.Width() < 3 || m.view.Height() < 1 {
		return "Window too small"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	canvas := m.view.Draw()
	b.WriteString(m.styles.Border.Render(canvas.Render(m.styles)))
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))

	return b.String()
}

func (m *Model) renderHeader() string {
	header := fmt.Sprintf(" %s | %d blocks", m.buf.Filename(), len(m.blocks))
	return m.styles.Header.Width(m.width).Render(ansi.Truncate(header, m.width, "…"))
}

// renderStatus shows the field under the cursor on the left and the
// scroll position and display mode on the right.
func (m *Model) renderStatus() string {
	mode := "hex"
	if m.view.ASCII() {
		mode = "ascii"
	}
	col, row := m.view.Cursor()
	right := fmt.Sprintf("%d,%d | offset %d/%d | %s", col, row, m.view.Offset(), m.view.MaxOffset(), mode)

	left := m.view.Detail()
	room := m.width - ansi.StringWidth(right) - 1
	if room < 1 {
		return m.styles.Status.Render(ansi.Truncate(right, m.width, "…"))
	}
	left = ansi.Truncate(left, room, "…")
	gap := strings.Repeat(" ", room-ansi.StringWidth(left)+1)
	return m.styles.Status.Render(left + gap + right)
}
