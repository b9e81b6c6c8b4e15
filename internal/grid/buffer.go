// Package grid provides the double-buffered cell grid widgets paint
// into, with change tracking for cheap terminal updates.
package grid

import (
	"github.com/dshills/gridtext/internal/core"
)

// Buffer is a double-buffered cell grid: a back plane that widgets
// draw into and a front plane mirroring what was last flushed. Sync
// promotes the back plane after its diff has been applied.
type Buffer struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	dirty         [][]bool
	fullRedraw    bool
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		width:      width,
		height:     height,
		fullRedraw: true,
	}
	b.allocate()
	return b
}

func (b *Buffer) allocate() {
	b.front = make([][]core.Cell, b.height)
	b.back = make([][]core.Cell, b.height)
	b.dirty = make([][]bool, b.height)

	for y := 0; y < b.height; y++ {
		b.front[y] = make([]core.Cell, b.width)
		b.back[y] = make([]core.Cell, b.width)
		b.dirty[y] = make([]bool, b.width)

		for x := 0; x < b.width; x++ {
			b.front[y][x] = core.EmptyCell()
			b.back[y][x] = core.EmptyCell()
		}
	}
}

// Resize resizes the buffer, preserving content where possible.
func (b *Buffer) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}

	oldBack := b.back
	oldWidth := b.width
	oldHeight := b.height

	b.width = width
	b.height = height
	b.allocate()

	copyHeight := min(oldHeight, height)
	copyWidth := min(oldWidth, width)
	for y := 0; y < copyHeight; y++ {
		for x := 0; x < copyWidth; x++ {
			b.back[y][x] = oldBack[y][x]
		}
	}

	b.fullRedraw = true
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// SetCell sets a cell in the back plane. A wide cell claims the
// following column with a continuation cell. Out-of-bounds writes are
// ignored.
func (b *Buffer) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.back[y][x] = cell
	b.dirty[y][x] = true

	if cell.Width == 2 && x+1 < b.width {
		b.back[y][x+1] = core.ContinuationCell()
		b.dirty[y][x+1] = true
	}
}

// GetCell returns a cell from the back plane.
func (b *Buffer) GetCell(x, y int) core.Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return core.EmptyCell()
	}
	return b.back[y][x]
}

// GetFrontCell returns a cell from the front plane.
func (b *Buffer) GetFrontCell(x, y int) core.Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return core.EmptyCell()
	}
	return b.front[y][x]
}

// Fill fills a rectangle with the given cell.
func (b *Buffer) Fill(rect core.ScreenRect, cell core.Cell) {
	for y := rect.Top; y < rect.Bottom && y < b.height; y++ {
		for x := rect.Left; x < rect.Right && x < b.width; x++ {
			if x >= 0 && y >= 0 {
				b.back[y][x] = cell
				b.dirty[y][x] = true
			}
		}
	}
}

// Clear clears the back plane with empty cells.
func (b *Buffer) Clear() {
	empty := core.EmptyCell()
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.back[y][x] = empty
			b.dirty[y][x] = true
		}
	}
}

// SetLine sets a row of cells starting at the given position.
func (b *Buffer) SetLine(x, y int, cells []core.Cell) {
	if y < 0 || y >= b.height {
		return
	}
	for i, cell := range cells {
		col := x + i
		if col >= 0 && col < b.width {
			b.back[y][col] = cell
			b.dirty[y][col] = true
		}
	}
}

// SetString writes a string with the given style, segmented into
// grapheme clusters. Returns the column after the last written cell.
func (b *Buffer) SetString(x, y int, s string, style core.Style) int {
	if y < 0 || y >= b.height {
		return x
	}
	col := x
	for _, cell := range core.CellsFromString(s, style) {
		if col >= b.width {
			break
		}
		if col >= 0 {
			b.back[y][col] = cell
			b.dirty[y][col] = true
		}
		col++
	}
	return col
}

// DiffChange represents a cell change for synchronization.
type DiffChange struct {
	X, Y int
	Cell core.Cell
}

// ComputeDiff returns the changes needed to update the display.
// Returns nil if no changes are needed.
func (b *Buffer) ComputeDiff() []DiffChange {
	var changes []DiffChange

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.fullRedraw || b.dirty[y][x] {
				if b.fullRedraw || !b.back[y][x].Equals(b.front[y][x]) {
					changes = append(changes, DiffChange{
						X:    x,
						Y:    y,
						Cell: b.back[y][x],
					})
				}
			}
		}
	}

	return changes
}

// Sync copies the back plane to the front plane and clears dirty
// flags. Call this after applying changes to the display.
func (b *Buffer) Sync() {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.front[y][x] = b.back[y][x]
			b.dirty[y][x] = false
		}
	}
	b.fullRedraw = false
}

// MarkFullRedraw forces a complete redraw on the next diff.
func (b *Buffer) MarkFullRedraw() {
	b.fullRedraw = true
}

// IsDirty returns true if there are pending changes.
func (b *Buffer) IsDirty() bool {
	if b.fullRedraw {
		return true
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.dirty[y][x] {
				return true
			}
		}
	}
	return false
}

// Row returns the symbols of a back-plane row as a string, skipping
// continuation cells. Intended for tests and debugging.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	return core.StringFromCells(b.back[y])
}
