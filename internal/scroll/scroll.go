// Package scroll selects the window of composed lines visible in a
// viewport anchored at the top or the bottom of the content.
package scroll

import "github.com/dshills/gridtext/internal/compose"

// Anchor names the content edge scrolling is measured from.
type Anchor int

const (
	// Top shows lines starting Offset lines into the content.
	Top Anchor = iota
	// Bottom shows the last lines of the content, Offset lines back.
	Bottom
)

// String returns the anchor name.
func (a Anchor) String() string {
	switch a {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// State is a widget's scroll position.
type State struct {
	// Offset counts lines scrolled away from the anchored edge.
	Offset int

	// Anchor selects which edge Offset is measured from.
	Anchor Anchor

	// OverflowRune, when non-zero under Bottom anchoring, marks
	// viewport rows that lie before the first line of content.
	// Top anchoring ignores it.
	OverflowRune rune
}

// HasOverflowRune reports whether an overflow filler is configured.
func (s State) HasOverflowRune() bool {
	return s.OverflowRune != 0
}

// Window decides which composed lines are visible. It returns the
// content index of the line for the first viewport row together with
// a pull function yielding lines from index zero on. Rows whose index
// is below a negative first index have no line and show the overflow
// filler instead.
//
// Top anchoring streams straight off the composer and never
// materializes skipped lines. Bottom anchoring has to collect every
// line to know the total.
func Window(lc compose.LineComposer, height int, st State) (int, func() (compose.Line, bool)) {
	if st.Anchor == Bottom {
		lines := compose.CollectLines(lc)
		first := bottomStart(len(lines), height, st)
		i := 0
		return first, func() (compose.Line, bool) {
			if i >= len(lines) {
				return compose.Line{}, false
			}
			line := lines[i]
			i++
			return line, true
		}
	}
	return st.Offset, lc.NextLine
}

// bottomStart computes the content index shown on the first viewport
// row. Without an overflow rune the index clamps at zero; with one it
// may go negative, one overflow row per missing line.
func bottomStart(total, height int, st State) int {
	if !st.HasOverflowRune() {
		if total <= height+st.Offset {
			return 0
		}
		return total - (height + st.Offset)
	}
	if total <= height {
		return -st.Offset
	}
	return total - (height + st.Offset)
}
