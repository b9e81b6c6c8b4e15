package widget

import (
	"strings"
	"testing"

	"github.com/dshills/gridtext/internal/core"
	"github.com/dshills/gridtext/internal/grid"
	"github.com/dshills/gridtext/internal/scroll"
	"github.com/dshills/gridtext/internal/text"
)

func drawInto(width, height int, p Paragraph) *grid.Buffer {
	buf := grid.NewBuffer(width, height)
	p.Draw(core.RectFromSize(0, 0, height, width), buf)
	return buf
}

func bufRows(buf *grid.Buffer) []string {
	_, h := buf.Size()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		rows[y] = strings.TrimRight(buf.Row(y), " ")
	}
	return rows
}

func expectRows(t *testing.T, buf *grid.Buffer, want []string) {
	t.Helper()
	got := bufRows(buf)
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParagraphTruncates(t *testing.T) {
	p := NewParagraph(text.Plain("hello world this is long\n"))
	buf := drawInto(10, 1, p)
	expectRows(t, buf, []string{"hello worl"})
}

func TestParagraphWraps(t *testing.T) {
	p := NewParagraph(text.Plain("hello world this is long\n")).WithWrap(true)
	buf := drawInto(10, 3, p)
	expectRows(t, buf, []string{"hello", "world this", "is long"})
}

func TestParagraphAlignment(t *testing.T) {
	tests := []struct {
		align Alignment
		want  string
	}{
		{AlignLeft, "hi"},
		{AlignCenter, "    hi"},
		{AlignRight, "        hi"},
	}

	for _, tt := range tests {
		p := NewParagraph(text.Plain("hi")).WithAlignment(tt.align)
		buf := drawInto(10, 1, p)
		if got := bufRows(buf)[0]; got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.align, tt.want, got)
		}
	}
}

func TestParagraphZeroHeight(t *testing.T) {
	buf := grid.NewBuffer(10, 3)
	buf.Fill(core.RectFromSize(0, 0, 3, 10), core.NewCell('.'))

	p := NewParagraph(text.Plain("hello"))
	p.Draw(core.RectFromSize(1, 0, 0, 10), buf)

	for y := 0; y < 3; y++ {
		if row := buf.Row(y); row != ".........." {
			t.Errorf("zero-height draw must not touch the buffer, row %d is %q", y, row)
		}
	}
}

func TestParagraphZeroWidth(t *testing.T) {
	buf := grid.NewBuffer(5, 2)
	p := NewParagraph(text.Plain("hello"))
	p.Draw(core.RectFromSize(0, 2, 2, 0), buf)

	expectRows(t, buf, []string{"", ""})
}

func TestParagraphMultipleLogicalLines(t *testing.T) {
	p := NewParagraph(text.Plain("one\ntwo\nthree"))
	buf := drawInto(10, 3, p)
	expectRows(t, buf, []string{"one", "two", "three"})
}

func TestParagraphTopAnchorOffset(t *testing.T) {
	p := NewParagraph(text.Plain("l0\nl1\nl2\nl3\nl4")).
		WithScroll(scroll.State{Anchor: scroll.Top, Offset: 2})
	buf := drawInto(5, 3, p)
	expectRows(t, buf, []string{"l2", "l3", "l4"})
}

func TestParagraphTopAnchorPastEnd(t *testing.T) {
	p := NewParagraph(text.Plain("l0\nl1")).
		WithScroll(scroll.State{Anchor: scroll.Top, Offset: 10, OverflowRune: '~'})
	buf := drawInto(5, 3, p)

	// Everything scrolled away; the overflow rune stays unused.
	expectRows(t, buf, []string{"", "", ""})
}

func TestParagraphBottomAnchor(t *testing.T) {
	content := text.Plain("l0\nl1\nl2\nl3\nl4")

	tests := []struct {
		name string
		st   scroll.State
		want []string
	}{
		{"offset 0", scroll.State{Anchor: scroll.Bottom}, []string{"l2", "l3", "l4"}},
		{"offset 1", scroll.State{Anchor: scroll.Bottom, Offset: 1}, []string{"l1", "l2", "l3"}},
		{"offset clamps", scroll.State{Anchor: scroll.Bottom, Offset: 4}, []string{"l0", "l1", "l2"}},
		{"offset with overflow rune", scroll.State{Anchor: scroll.Bottom, Offset: 4, OverflowRune: '~'}, []string{"~", "~", "l0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParagraph(content).WithScroll(tt.st)
			buf := drawInto(5, 3, p)
			expectRows(t, buf, tt.want)
		})
	}
}

func TestParagraphBottomAnchorShortContent(t *testing.T) {
	p := NewParagraph(text.Plain("l0\nl1")).
		WithScroll(scroll.State{Anchor: scroll.Bottom})
	buf := drawInto(5, 3, p)
	expectRows(t, buf, []string{"l0", "l1", ""})
}

func TestParagraphBottomAnchorShortContentOverflow(t *testing.T) {
	p := NewParagraph(text.Plain("l0\nl1")).
		WithScroll(scroll.State{Anchor: scroll.Bottom, Offset: 1, OverflowRune: '~'})
	buf := drawInto(5, 3, p)
	expectRows(t, buf, []string{"~", "l0", "l1"})
}

func TestParagraphOverflowRuneLeftColumnOnly(t *testing.T) {
	p := NewParagraph(text.Plain("l0\nl1\nl2\nl3\nl4")).
		WithScroll(scroll.State{Anchor: scroll.Bottom, Offset: 4, OverflowRune: '~'})
	buf := drawInto(5, 3, p)

	if buf.GetCell(0, 0).Symbol != "~" {
		t.Error("overflow rune should sit in the leftmost column")
	}
	if buf.GetCell(1, 0).Symbol == "~" {
		t.Error("overflow rune should not repeat across the row")
	}
}

func TestParagraphOverflowStyle(t *testing.T) {
	dim := core.DefaultStyle().Dim()
	p := NewParagraph(text.Plain("l0\nl1")).
		WithScroll(scroll.State{Anchor: scroll.Bottom, Offset: 1, OverflowRune: '~'}).
		WithOverflowStyle(dim)
	buf := drawInto(5, 3, p)

	cell := buf.GetCell(0, 0)
	if cell.Symbol != "~" {
		t.Fatalf("expected overflow rune, got %q", cell.Symbol)
	}
	if !cell.Style.Equals(dim) {
		t.Error("overflow cell should carry the overflow style")
	}
}

func TestParagraphWideChars(t *testing.T) {
	p := NewParagraph(text.Plain("世界"))
	buf := drawInto(3, 1, p)

	// Only the first wide cluster fits; the second would split.
	if got := bufRows(buf)[0]; got != "世" {
		t.Errorf("expected %q, got %q", "世", got)
	}
	if !buf.GetCell(1, 0).IsContinuation() {
		t.Error("wide symbol should claim a continuation cell")
	}
}

func TestParagraphStyles(t *testing.T) {
	base := core.DefaultStyle().WithBackground(core.ColorBlue)
	red := core.NewStyle(core.ColorRed)
	p := NewParagraph(text.Plain("a"), text.Styled("b", red)).WithStyle(base)
	buf := drawInto(4, 1, p)

	if !buf.GetCell(0, 0).Style.Equals(base) {
		t.Error("plain span should carry the base style")
	}
	if !buf.GetCell(1, 0).Style.Equals(red) {
		t.Error("styled span should carry its own style")
	}
	if !buf.GetCell(3, 0).Style.Equals(base) {
		t.Error("background fill should carry the base style")
	}
}

func TestParagraphWithBlock(t *testing.T) {
	p := NewParagraph(text.Plain("hi")).
		WithBlock(NewBlock().WithBorders(BorderAll).WithTitle("T"))
	buf := drawInto(6, 3, p)

	want := []string{"┌T───┐", "│hi  │", "└────┘"}
	got := bufRows(buf)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParagraphBlockTooSmallForText(t *testing.T) {
	// Two rows of border leave no text rows; the block still draws.
	p := NewParagraph(text.Plain("hi")).
		WithBlock(NewBlock().WithBorders(BorderAll))
	buf := drawInto(4, 2, p)

	expectRows(t, buf, []string{"┌──┐", "└──┘"})
}

func TestParagraphScrollWithWrap(t *testing.T) {
	p := NewParagraph(text.Plain("hello world this is long\n")).
		WithWrap(true).
		WithScroll(scroll.State{Anchor: scroll.Top, Offset: 1})
	buf := drawInto(10, 2, p)
	expectRows(t, buf, []string{"world this", "is long"})
}
