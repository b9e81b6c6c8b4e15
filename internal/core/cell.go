package core

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell represents a single grid cell.
type Cell struct {
	// Symbol is the grapheme cluster to display. A cluster may be
	// several runes (combining marks, emoji sequences) but always
	// occupies Width columns.
	Symbol string

	// Width is the display width of this cell (0, 1, or 2).
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{
		Symbol: " ",
		Width:  1,
		Style:  DefaultStyle(),
	}
}

// NewCell creates a cell with the given rune and default style.
func NewCell(r rune) Cell {
	return Cell{
		Symbol: string(r),
		Width:  RuneDisplayWidth(r),
		Style:  DefaultStyle(),
	}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{
		Symbol: string(r),
		Width:  RuneDisplayWidth(r),
		Style:  style,
	}
}

// NewSymbolCell creates a cell holding a grapheme cluster.
func NewSymbolCell(symbol string, style Style) Cell {
	return Cell{
		Symbol: symbol,
		Width:  ClusterWidth(symbol),
		Style:  style,
	}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// WithSymbol returns a new cell with the given symbol and its width.
func (c Cell) WithSymbol(symbol string) Cell {
	c.Symbol = symbol
	c.Width = ClusterWidth(symbol)
	return c
}

// IsEmpty returns true if this is an empty (space) cell.
func (c Cell) IsEmpty() bool {
	return c.Symbol == " " || c.Symbol == ""
}

// IsContinuation returns true if this is a continuation cell.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Symbol == ""
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Symbol == other.Symbol &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}

// ContinuationCell returns a continuation cell for wide characters.
func ContinuationCell() Cell {
	return Cell{
		Symbol: "",
		Width:  0,
		Style:  DefaultStyle(),
	}
}

// RuneDisplayWidth returns the display width of a single rune.
func RuneDisplayWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// ClusterWidth returns the display width of a grapheme cluster.
// Combining marks contribute nothing; emoji sequences count as the
// width of their base symbol.
func ClusterWidth(symbol string) int {
	if symbol == "" {
		return 0
	}
	return runewidth.StringWidth(symbol)
}

// CellsFromString segments a string into cells, one per grapheme
// cluster. Wide clusters are followed by a continuation cell.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		symbol := g.Str()
		width := ClusterWidth(symbol)
		cells = append(cells, Cell{
			Symbol: symbol,
			Width:  width,
			Style:  style,
		})
		if width == 2 {
			cells = append(cells, ContinuationCell())
		}
	}
	return cells
}

// StringFromCells converts cells back to a string.
func StringFromCells(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if !c.IsContinuation() {
			b.WriteString(c.Symbol)
		}
	}
	return b.String()
}
