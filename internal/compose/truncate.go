package compose

import "github.com/dshills/gridtext/internal/text"

// Truncator composes one display line per logical line, hard-cut at
// the width limit. Overflow up to the next newline is discarded.
type Truncator struct {
	src      *text.Stream
	maxWidth int
}

// NewTruncator creates a truncating composer over src.
func NewTruncator(src *text.Stream, maxWidth int) *Truncator {
	return &Truncator{src: src, maxWidth: maxWidth}
}

// NextLine returns the next truncated display line.
func (t *Truncator) NextLine() (Line, bool) {
	if t.maxWidth <= 0 {
		return Line{}, false
	}

	var line Line
	exhausted := true
	skipRest := false

	for {
		u, ok := t.src.Next()
		if !ok {
			break
		}
		exhausted = false

		// A unit wider than the whole line can never be shown.
		if u.Width > t.maxWidth {
			continue
		}
		if u.IsNewline() {
			return line, true
		}
		if line.Width+u.Width > t.maxWidth {
			skipRest = true
			break
		}
		line.Units = append(line.Units, u)
		line.Width += u.Width
	}

	if skipRest {
		// Discard the remainder of the logical line.
		for {
			u, ok := t.src.Next()
			if !ok || u.IsNewline() {
				break
			}
		}
		return line, true
	}

	if exhausted && len(line.Units) == 0 {
		return Line{}, false
	}
	return line, true
}
