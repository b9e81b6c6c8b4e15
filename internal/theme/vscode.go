package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/gridtext/internal/core"
)

// Workbench color keys mapped onto theme entries.
const (
	vscEditorFg     = "editor.foreground"
	vscEditorBg     = "editor.background"
	vscPanelBorder  = "panel.border"
	vscTitleFg      = "titleBar.activeForeground"
	vscTitleBg      = "titleBar.activeBackground"
	vscStatusFg     = "statusBar.foreground"
	vscStatusBg     = "statusBar.background"
	vscLineNumberFg = "editorLineNumber.foreground"
)

// LoadVSCode reads a VS Code color theme from a JSON file.
func LoadVSCode(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file %s: %w", path, err)
	}

	th, err := ParseVSCode(path, data)
	if err != nil {
		return Theme{}, err
	}

	if th.Name == "" {
		th.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return th, nil
}

// ParseVSCode maps a VS Code color theme onto the pager's elements.
// Workbench colors the theme does not define fall back to the editor
// colors, so partial themes still render coherently.
func ParseVSCode(source string, data []byte) (Theme, error) {
	if !gjson.ValidBytes(data) {
		return Theme{}, &ParseError{
			Path:    source,
			Message: "invalid JSON",
		}
	}

	doc := gjson.ParseBytes(data)
	th := Default()
	th.Name = doc.Get("name").String()
	if doc.Get("type").String() == "light" {
		th.Syntax = "github"
	}

	colors := doc.Get("colors")
	if !colors.Exists() {
		return th, nil
	}

	textFg, err := colorKey(colors, vscEditorFg)
	if err != nil {
		return Theme{}, parseKeyError(source, err)
	}
	textBg, err := colorKey(colors, vscEditorBg)
	if err != nil {
		return Theme{}, parseKeyError(source, err)
	}
	th.Text = core.DefaultStyle().WithForeground(textFg).WithBackground(textBg)

	borderFg, err := colorKey(colors, vscPanelBorder)
	if err != nil {
		return Theme{}, parseKeyError(source, err)
	}
	th.Border = core.DefaultStyle().WithForeground(borderFg).WithBackground(textBg)
	if borderFg.Default {
		th.Border = th.Border.WithForeground(textFg).Dim()
	}

	titleFg, err := colorKey(colors, vscTitleFg)
	if err != nil {
		return Theme{}, parseKeyError(source, err)
	}
	titleBg, err := colorKey(colors, vscTitleBg)
	if err != nil {
		return Theme{}, parseKeyError(source, err)
	}
	if titleFg.Default {
		titleFg = textFg
	}
	if titleBg.Default {
		titleBg = textBg
	}
	th.Title = core.DefaultStyle().WithForeground(titleFg).WithBackground(titleBg).Bold()

	statusFg, err := colorKey(colors, vscStatusFg)
	if err != nil {
		return Theme{}, parseKeyError(source, err)
	}
	statusBg, err := colorKey(colors, vscStatusBg)
	if err != nil {
		return Theme{}, parseKeyError(source, err)
	}
	if statusFg.Default && statusBg.Default {
		th.Status = th.Text.Reverse()
	} else {
		th.Status = core.DefaultStyle().WithForeground(statusFg).WithBackground(statusBg)
	}

	overflowFg, err := colorKey(colors, vscLineNumberFg)
	if err != nil {
		return Theme{}, parseKeyError(source, err)
	}
	th.Overflow = core.DefaultStyle().WithForeground(overflowFg).WithBackground(textBg)
	if overflowFg.Default {
		th.Overflow = th.Overflow.WithForeground(textFg).Dim()
	}

	return th, nil
}

// colorKey reads one workbench color. Missing keys yield the default
// color, not an error.
func colorKey(colors gjson.Result, key string) (core.Color, error) {
	v := colors.Get(escapeKey(key))
	if !v.Exists() {
		return core.ColorDefault, nil
	}

	c, err := vscodeColor(v.String())
	if err != nil {
		return core.Color{}, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}

// vscodeColor parses a VS Code color value, dropping the alpha
// channel of #RRGGBBAA and #RGBA forms.
func vscodeColor(s string) (core.Color, error) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 8:
		s = s[:6]
	case 4:
		s = s[:3]
	}
	return core.ColorFromHex(s)
}

// escapeKey escapes the dots of a workbench color key for a path
// lookup.
func escapeKey(key string) string {
	return strings.ReplaceAll(key, ".", `\.`)
}

func parseKeyError(source string, err error) error {
	return fmt.Errorf("theme %s: %w", source, err)
}
