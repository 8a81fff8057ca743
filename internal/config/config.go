package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	HeaderBackground   string   `toml:"header_background"`
	HeaderForeground   string   `toml:"header_foreground"`
	BorderColor        string   `toml:"border_color"`
	TitleColor         string   `toml:"title_color"`
	ErrorColor         string   `toml:"error_color"`
	CursorBackground   string   `toml:"cursor_background"`
	CursorForeground   string   `toml:"cursor_foreground"`
	StatusColor        string   `toml:"status_color"`
	SectionForegrounds []string `toml:"section_foregrounds"`
	SectionBackgrounds []string `toml:"section_backgrounds"`
}

type Config struct {
	Theme Theme `toml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: Theme{
			HeaderBackground: "#0000FF",
			HeaderForeground: "#FFFFFF",
			BorderColor:      "#0000FF",
			TitleColor:       "#FFFFFF",
			ErrorColor:       "#FF0000",
			CursorBackground: "#FFAA00",
			CursorForeground: "#000000",
			StatusColor:      "#AAAAAA",
			// white, red, green, magenta, light blue over black / dark grey
			SectionForegrounds: []string{"7", "1", "2", "5", "12"},
			SectionBackgrounds: []string{"0", "8"},
		},
	}
}

func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "ngview")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "ngview.toml")
}

// Load reads the theme file at path over the defaults. An empty path means
// ConfigPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("load theme %q: %w", path, err)
	}
	if len(cfg.Theme.SectionForegrounds) == 0 {
		cfg.Theme.SectionForegrounds = DefaultConfig().Theme.SectionForegrounds
	}
	if len(cfg.Theme.SectionBackgrounds) == 0 {
		cfg.Theme.SectionBackgrounds = DefaultConfig().Theme.SectionBackgrounds
	}
	return cfg, nil
}

type Styles struct {
	Header   lipgloss.Style
	Border   lipgloss.Style
	Title    lipgloss.Style
	Error    lipgloss.Style
	Cursor   lipgloss.Style
	Status   lipgloss.Style
	Normal   lipgloss.Style
	Sections []lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.HeaderBackground)).
			Foreground(lipgloss.Color(theme.HeaderForeground)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(theme.BorderColor)),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TitleColor)).
			Bold(true).
			Underline(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ErrorColor)).
			Bold(true).
			Underline(true),
		Cursor: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CursorBackground)).
			Foreground(lipgloss.Color(theme.CursorForeground)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.StatusColor)),
		Normal:   lipgloss.NewStyle(),
		Sections: sectionStyles(theme.SectionForegrounds, theme.SectionBackgrounds),
	}
}

// Section returns the palette style for the i-th section of a block.
func (s *Styles) Section(i int) lipgloss.Style {
	if len(s.Sections) == 0 {
		return s.Normal
	}
	return s.Sections[i%len(s.Sections)]
}

// sectionStyles pairs foregrounds and backgrounds the way two independently
// cycling palettes would, so the combined cycle has lcm(len(fg), len(bg))
// entries.
func sectionStyles(fg, bg []string) []lipgloss.Style {
	if len(fg) == 0 || len(bg) == 0 {
		return nil
	}
	n := len(fg) * len(bg) / gcd(len(fg), len(bg))
	out := make([]lipgloss.Style, n)
	for i := range out {
		out[i] = lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg[i%len(fg)])).
			Background(lipgloss.Color(bg[i%len(bg)]))
	}
	return out
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
