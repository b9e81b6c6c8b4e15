package widget

import "github.com/dshills/gridtext/internal/core"

// Border selects which sides of a block are drawn.
type Border int

// Border side flags.
const (
	BorderNone   Border = 0
	BorderTop    Border = 1 << iota
	BorderRight
	BorderBottom
	BorderLeft
)

// BorderAll draws all four sides.
const BorderAll = BorderTop | BorderRight | BorderBottom | BorderLeft

// Has returns true if the border set contains the given side.
func (b Border) Has(side Border) bool {
	return b&side != 0
}

// Border drawing symbols.
const (
	lineHorizontal = '─'
	lineVertical   = '│'
	cornerTopLeft  = '┌'
	cornerTopRight = '┐'
	cornerBotLeft  = '└'
	cornerBotRight = '┘'
)

// Block decorates an area with borders and an optional title. The
// remaining space, available through Inner, hosts the wrapped widget.
type Block struct {
	Title       string
	TitleStyle  core.Style
	Borders     Border
	BorderStyle core.Style
}

// NewBlock creates an undecorated block.
func NewBlock() Block {
	return Block{
		TitleStyle:  core.DefaultStyle(),
		BorderStyle: core.DefaultStyle(),
	}
}

// WithTitle returns a block with the given title.
func (b Block) WithTitle(title string) Block {
	b.Title = title
	return b
}

// WithTitleStyle returns a block with the given title style.
func (b Block) WithTitleStyle(style core.Style) Block {
	b.TitleStyle = style
	return b
}

// WithBorders returns a block with the given border sides.
func (b Block) WithBorders(borders Border) Block {
	b.Borders = borders
	return b
}

// WithBorderStyle returns a block with the given border style.
func (b Block) WithBorderStyle(style core.Style) Block {
	b.BorderStyle = style
	return b
}

// Inner returns the area left for content after borders and title.
// A title claims the top row even without a top border.
func (b Block) Inner(area core.ScreenRect) core.ScreenRect {
	inner := area
	if b.Borders.Has(BorderLeft) && inner.Left < inner.Right {
		inner.Left++
	}
	if (b.Borders.Has(BorderTop) || b.Title != "") && inner.Top < inner.Bottom {
		inner.Top++
	}
	if b.Borders.Has(BorderRight) && inner.Right > inner.Left {
		inner.Right--
	}
	if b.Borders.Has(BorderBottom) && inner.Bottom > inner.Top {
		inner.Bottom--
	}
	return inner
}

// Draw paints the borders and title into area on s.
func (b Block) Draw(area core.ScreenRect, s Surface) {
	if area.IsEmpty() {
		return
	}

	if b.Borders.Has(BorderLeft) {
		for y := area.Top; y < area.Bottom; y++ {
			s.SetCell(area.Left, y, core.NewStyledCell(lineVertical, b.BorderStyle))
		}
	}
	if b.Borders.Has(BorderTop) {
		for x := area.Left; x < area.Right; x++ {
			s.SetCell(x, area.Top, core.NewStyledCell(lineHorizontal, b.BorderStyle))
		}
	}
	if b.Borders.Has(BorderRight) {
		for y := area.Top; y < area.Bottom; y++ {
			s.SetCell(area.Right-1, y, core.NewStyledCell(lineVertical, b.BorderStyle))
		}
	}
	if b.Borders.Has(BorderBottom) {
		for x := area.Left; x < area.Right; x++ {
			s.SetCell(x, area.Bottom-1, core.NewStyledCell(lineHorizontal, b.BorderStyle))
		}
	}

	if b.Borders.Has(BorderLeft) && b.Borders.Has(BorderTop) {
		s.SetCell(area.Left, area.Top, core.NewStyledCell(cornerTopLeft, b.BorderStyle))
	}
	if b.Borders.Has(BorderRight) && b.Borders.Has(BorderTop) {
		s.SetCell(area.Right-1, area.Top, core.NewStyledCell(cornerTopRight, b.BorderStyle))
	}
	if b.Borders.Has(BorderLeft) && b.Borders.Has(BorderBottom) {
		s.SetCell(area.Left, area.Bottom-1, core.NewStyledCell(cornerBotLeft, b.BorderStyle))
	}
	if b.Borders.Has(BorderRight) && b.Borders.Has(BorderBottom) {
		s.SetCell(area.Right-1, area.Bottom-1, core.NewStyledCell(cornerBotRight, b.BorderStyle))
	}

	if b.Title != "" {
		x := area.Left
		if b.Borders.Has(BorderLeft) {
			x++
		}
		right := area.Right
		if b.Borders.Has(BorderRight) {
			right--
		}
		writeClipped(s, x, area.Top, right, b.Title, b.TitleStyle)
	}
}

// writeClipped writes a string of cells left to right, stopping at
// the right bound.
func writeClipped(s Surface, x, y, right int, str string, style core.Style) {
	for _, cell := range core.CellsFromString(str, style) {
		if cell.IsContinuation() {
			continue
		}
		if x >= right || x+cell.Width > right {
			break
		}
		s.SetCell(x, y, cell)
		x += cell.Width
	}
}
