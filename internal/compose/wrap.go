package compose

import "github.com/dshills/gridtext/internal/text"

// WordWrapper composes display lines by soft-wrapping at whitespace
// boundaries. Words that cannot fit any line are split hard at the
// width limit. Trailing whitespace is trimmed where a line wraps;
// hard newlines keep their surrounding whitespace.
//
// The wrapper is an explicit state machine: a current-line buffer, a
// pending-word buffer, and a short queue of completed lines (a single
// newline can complete two lines when the word before it has to wrap).
type WordWrapper struct {
	src      *text.Stream
	maxWidth int

	current      Line
	pending      []text.GraphemeUnit
	pendingWidth int

	queued  []Line
	srcDone bool
	flushed bool
}

// NewWordWrapper creates a word-wrapping composer over src.
func NewWordWrapper(src *text.Stream, maxWidth int) *WordWrapper {
	return &WordWrapper{src: src, maxWidth: maxWidth}
}

// NextLine returns the next wrapped display line.
func (w *WordWrapper) NextLine() (Line, bool) {
	if w.maxWidth <= 0 {
		return Line{}, false
	}

	for {
		if len(w.queued) > 0 {
			line := w.queued[0]
			w.queued = w.queued[1:]
			return line, true
		}
		if w.srcDone {
			if !w.flushed {
				w.flushed = true
				w.flushPending()
				if len(w.current.Units) > 0 {
					w.endLine(false)
				}
				continue
			}
			return Line{}, false
		}
		u, ok := w.src.Next()
		if !ok {
			w.srcDone = true
			continue
		}
		w.consume(u)
	}
}

// consume feeds one unit to the state machine, completing zero, one,
// or two lines.
func (w *WordWrapper) consume(u text.GraphemeUnit) {
	switch {
	case u.IsNewline():
		w.flushPending()
		w.endLine(false)

	case u.IsWhitespace():
		w.flushPending()
		if u.Width > w.maxWidth {
			// Separator wider than the whole line; the word
			// boundary survives, the unit does not.
			return
		}
		if w.current.Width+u.Width <= w.maxWidth {
			w.current.Units = append(w.current.Units, u)
			w.current.Width += u.Width
		} else {
			w.endLine(true)
		}

	default:
		if u.Width > w.maxWidth {
			// A unit wider than the whole line can never be shown.
			return
		}
		if w.pendingWidth+u.Width > w.maxWidth {
			// The word alone exceeds the limit; emit what fits as a
			// full-width chunk and keep accumulating.
			if len(w.current.Units) > 0 {
				w.endLine(true)
			}
			w.current = Line{Units: w.pending, Width: w.pendingWidth}
			w.endLine(false)
			w.pending = nil
			w.pendingWidth = 0
		}
		w.pending = append(w.pending, u)
		w.pendingWidth += u.Width
	}
}

// flushPending commits the pending word to the current line, wrapping
// first when the word does not fit the remaining width. A word that
// exactly fills the remaining width stays on the current line.
func (w *WordWrapper) flushPending() {
	if len(w.pending) == 0 {
		return
	}
	if w.current.Width+w.pendingWidth > w.maxWidth && len(w.current.Units) > 0 {
		w.endLine(true)
	}
	w.current.Units = append(w.current.Units, w.pending...)
	w.current.Width += w.pendingWidth
	w.pending = nil
	w.pendingWidth = 0
}

// endLine completes the current line. With trim set, trailing
// whitespace is removed first.
func (w *WordWrapper) endLine(trim bool) {
	line := w.current
	if trim {
		for len(line.Units) > 0 {
			last := line.Units[len(line.Units)-1]
			if !last.IsWhitespace() {
				break
			}
			line.Units = line.Units[:len(line.Units)-1]
			line.Width -= last.Width
		}
	}
	w.queued = append(w.queued, line)
	w.current = Line{}
}
