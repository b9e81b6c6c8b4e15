// Package theme provides color themes for the pager's screen
// elements, loadable from TOML files or VS Code JSON themes.
package theme

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/gridtext/internal/core"
)

// Theme errors.
var (
	// ErrUnknownFormat indicates a theme file extension with no loader.
	ErrUnknownFormat = errors.New("unknown theme format")

	// ErrUnknownTheme indicates a built-in theme name that does not exist.
	ErrUnknownTheme = errors.New("unknown theme")
)

// ParseError represents an error while parsing a theme file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Theme groups the styles for the pager's screen elements.
type Theme struct {
	// Name identifies the theme.
	Name string

	// Text styles the document body and is the base plain spans inherit.
	Text core.Style

	// Border styles block borders.
	Border core.Style

	// Title styles block titles.
	Title core.Style

	// Status styles the status line.
	Status core.Style

	// Overflow styles the filler rows past the scrolled-out edge.
	Overflow core.Style

	// Syntax names the highlighter style for source files.
	Syntax string
}

// Default returns a theme that uses the terminal's own colors.
func Default() Theme {
	return Theme{
		Name:     "default",
		Text:     core.DefaultStyle(),
		Border:   core.DefaultStyle().Dim(),
		Title:    core.DefaultStyle().Bold(),
		Status:   core.DefaultStyle().Reverse(),
		Overflow: core.DefaultStyle().Dim(),
		Syntax:   "monokai",
	}
}

// Dark returns a dark theme based on the Nord palette.
func Dark() Theme {
	fg := core.ColorFromRGB(0xd8, 0xde, 0xe9)
	bg := core.ColorFromRGB(0x2e, 0x34, 0x40)
	accent := core.ColorFromRGB(0x88, 0xc0, 0xd0)
	muted := core.ColorFromRGB(0x4c, 0x56, 0x6a)

	return Theme{
		Name:     "dark",
		Text:     core.DefaultStyle().WithForeground(fg).WithBackground(bg),
		Border:   core.DefaultStyle().WithForeground(muted).WithBackground(bg),
		Title:    core.DefaultStyle().WithForeground(accent).WithBackground(bg).Bold(),
		Status:   core.DefaultStyle().WithForeground(bg).WithBackground(accent),
		Overflow: core.DefaultStyle().WithForeground(muted).WithBackground(bg),
		Syntax:   "nord",
	}
}

// Light returns a light theme.
func Light() Theme {
	fg := core.ColorFromRGB(0x24, 0x29, 0x2e)
	bg := core.ColorFromRGB(0xff, 0xff, 0xff)
	accent := core.ColorFromRGB(0x09, 0x69, 0xda)
	muted := core.ColorFromRGB(0x8c, 0x95, 0x9f)

	return Theme{
		Name:     "light",
		Text:     core.DefaultStyle().WithForeground(fg).WithBackground(bg),
		Border:   core.DefaultStyle().WithForeground(muted).WithBackground(bg),
		Title:    core.DefaultStyle().WithForeground(accent).WithBackground(bg).Bold(),
		Status:   core.DefaultStyle().WithForeground(bg).WithBackground(accent),
		Overflow: core.DefaultStyle().WithForeground(muted).WithBackground(bg),
		Syntax:   "github",
	}
}

// Builtin returns a built-in theme by name.
func Builtin(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return Default(), nil
	case "dark":
		return Dark(), nil
	case "light":
		return Light(), nil
	default:
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
}

// Load reads a theme from a file, picking the loader by extension.
// TOML files use the native format; JSON files are treated as VS Code
// color themes.
func Load(path string) (Theme, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(path)
	case ".json":
		return LoadVSCode(path)
	default:
		return Theme{}, fmt.Errorf("loading theme %s: %w", path, ErrUnknownFormat)
	}
}

// Resolve returns the theme for a -theme flag value: a built-in name,
// or a path to a theme file.
func Resolve(value string) (Theme, error) {
	if value == "" {
		return Default(), nil
	}
	if th, err := Builtin(value); err == nil {
		return th, nil
	}
	return Load(value)
}
