// Package widget provides the drawable text widgets: Paragraph for
// styled, wrapped, scrollable text and Block for border decoration.
package widget

import "github.com/dshills/gridtext/internal/core"

// Surface receives painted cells. The grid buffer and the terminal
// backends satisfy it.
type Surface interface {
	SetCell(x, y int, cell core.Cell)
}
