// Package compose turns styled grapheme streams into display lines
// bounded by a maximum width.
package compose

import (
	"strings"

	"github.com/dshills/gridtext/internal/text"
)

// Line is a composed display line. The summed width of its units
// never exceeds the width the composer was created with.
type Line struct {
	Units []text.GraphemeUnit
	Width int
}

// String returns the concatenated clusters of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, u := range l.Units {
		b.WriteString(u.Cluster)
	}
	return b.String()
}

// LineComposer produces display lines from a grapheme stream. Each
// NextLine call consumes only as much of the stream as the line
// needs, so callers can stop early.
type LineComposer interface {
	// NextLine returns the next display line, or false when the
	// stream is exhausted.
	NextLine() (Line, bool)
}

// CollectLines drains a composer into a slice.
func CollectLines(lc LineComposer) []Line {
	var lines []Line
	for {
		line, ok := lc.NextLine()
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}
