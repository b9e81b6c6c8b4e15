package widget

// Alignment positions a line horizontally within the text area.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// LineOffset returns the starting column offset for a line of the
// given width inside an area of the given width. Lines wider than the
// area start at zero.
func LineOffset(lineWidth, areaWidth int, align Alignment) int {
	switch align {
	case AlignCenter:
		off := areaWidth/2 - lineWidth/2
		if off < 0 {
			return 0
		}
		return off
	case AlignRight:
		off := areaWidth - lineWidth
		if off < 0 {
			return 0
		}
		return off
	default:
		return 0
	}
}
