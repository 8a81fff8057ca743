package viewer

import (
	"github.com/charmbracelet/bubbles/key"

	"ngview/internal/viewport"
)

type keyMap struct {
	Quit         key.Binding
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Fold         key.Binding
	ASCII        key.Binding
	Help         key.Binding
}

var keys = keyMap{
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Left:         key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "left")),
	Right:        key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "right")),
	HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "half page down")),
	HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "half page up")),
	Top:          key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Fold:         key.NewBinding(key.WithKeys("f", "enter"), key.WithHelp("f", "fold block")),
	ASCII:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "hex/ascii")),
	Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fold, k.ASCII, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.HalfPageDown, k.HalfPageUp, k.Top, k.Bottom},
		{k.Fold, k.ASCII, k.Help, k.Quit},
	}
}

// commands maps navigation bindings to viewport commands. Quit and Help
// stay with the model.
var commands = []struct {
	binding *key.Binding
	cmd     viewport.Command
}{
	{&keys.Up, viewport.CmdUp},
	{&keys.Down, viewport.CmdDown},
	{&keys.Left, viewport.CmdLeft},
	{&keys.Right, viewport.CmdRight},
	{&keys.HalfPageDown, viewport.CmdHalfPageDown},
	{&keys.HalfPageUp, viewport.CmdHalfPageUp},
	{&keys.Top, viewport.CmdTop},
	{&keys.Bottom, viewport.CmdBottom},
	{&keys.Fold, viewport.CmdFold},
	{&keys.ASCII, viewport.CmdToggleASCII},
}
