package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/gridtext/internal/core"
)

// tomlTheme is the on-disk TOML shape. Absent sections keep the
// default theme's styling.
type tomlTheme struct {
	Name     string     `toml:"name"`
	Syntax   string     `toml:"syntax"`
	Text     *tomlStyle `toml:"text"`
	Border   *tomlStyle `toml:"border"`
	Title    *tomlStyle `toml:"title"`
	Status   *tomlStyle `toml:"status"`
	Overflow *tomlStyle `toml:"overflow"`
}

type tomlStyle struct {
	Foreground    string `toml:"foreground"`
	Background    string `toml:"background"`
	Bold          bool   `toml:"bold"`
	Dim           bool   `toml:"dim"`
	Italic        bool   `toml:"italic"`
	Underline     bool   `toml:"underline"`
	Reverse       bool   `toml:"reverse"`
	Strikethrough bool   `toml:"strikethrough"`
}

// LoadTOML reads a theme from a TOML file.
func LoadTOML(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file %s: %w", path, err)
	}

	th, err := ParseTOML(path, data)
	if err != nil {
		return Theme{}, err
	}

	if th.Name == "" {
		th.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return th, nil
}

// ParseTOML parses TOML theme data. The source string labels errors.
func ParseTOML(source string, data []byte) (Theme, error) {
	var raw tomlTheme
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Theme{}, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}

	th := Default()
	th.Name = raw.Name
	if raw.Syntax != "" {
		th.Syntax = raw.Syntax
	}

	sections := []struct {
		name string
		raw  *tomlStyle
		dst  *core.Style
	}{
		{"text", raw.Text, &th.Text},
		{"border", raw.Border, &th.Border},
		{"title", raw.Title, &th.Title},
		{"status", raw.Status, &th.Status},
		{"overflow", raw.Overflow, &th.Overflow},
	}

	for _, s := range sections {
		if s.raw == nil {
			continue
		}
		style, err := s.raw.style()
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s: [%s]: %w", source, s.name, err)
		}
		*s.dst = style
	}

	return th, nil
}

// style converts a TOML style section. A present section replaces the
// default styling entirely.
func (ts *tomlStyle) style() (core.Style, error) {
	fg, err := parseColor(ts.Foreground)
	if err != nil {
		return core.Style{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := parseColor(ts.Background)
	if err != nil {
		return core.Style{}, fmt.Errorf("background: %w", err)
	}

	style := core.DefaultStyle().WithForeground(fg).WithBackground(bg)
	if ts.Bold {
		style = style.Bold()
	}
	if ts.Dim {
		style = style.Dim()
	}
	if ts.Italic {
		style = style.Italic()
	}
	if ts.Underline {
		style = style.Underline()
	}
	if ts.Reverse {
		style = style.Reverse()
	}
	if ts.Strikethrough {
		style = style.Strikethrough()
	}
	return style, nil
}

// parseColor reads a theme color value: empty or "default" for the
// terminal's own color, otherwise a hex string.
func parseColor(s string) (core.Color, error) {
	if s == "" || strings.EqualFold(s, "default") {
		return core.ColorDefault, nil
	}
	return core.ColorFromHex(s)
}
