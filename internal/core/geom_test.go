package core

import (
	"testing"
)

func TestScreenRectSize(t *testing.T) {
	r := NewScreenRect(2, 3, 10, 15)
	if r.Width() != 12 {
		t.Errorf("expected width 12, got %d", r.Width())
	}
	if r.Height() != 8 {
		t.Errorf("expected height 8, got %d", r.Height())
	}

	w, h := r.Size()
	if w != 12 || h != 8 {
		t.Errorf("expected size (12, 8), got (%d, %d)", w, h)
	}
}

func TestRectFromSize(t *testing.T) {
	r := RectFromSize(5, 10, 3, 20)
	if r.Top != 5 || r.Left != 10 || r.Bottom != 8 || r.Right != 30 {
		t.Errorf("unexpected rect: %+v", r)
	}
}

func TestScreenRectIsEmpty(t *testing.T) {
	if NewScreenRect(0, 0, 10, 10).IsEmpty() {
		t.Error("non-degenerate rect should not be empty")
	}
	if !NewScreenRect(5, 5, 5, 10).IsEmpty() {
		t.Error("zero-height rect should be empty")
	}
	if !NewScreenRect(5, 5, 10, 5).IsEmpty() {
		t.Error("zero-width rect should be empty")
	}
	if !NewScreenRect(10, 10, 5, 5).IsEmpty() {
		t.Error("inverted rect should be empty")
	}
}

func TestScreenRectContains(t *testing.T) {
	r := NewScreenRect(2, 2, 5, 5)

	if !r.Contains(NewScreenPos(2, 2)) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(NewScreenPos(5, 2)) {
		t.Error("bottom edge is exclusive")
	}
	if r.Contains(NewScreenPos(2, 5)) {
		t.Error("right edge is exclusive")
	}
}

func TestScreenRectIntersection(t *testing.T) {
	a := NewScreenRect(0, 0, 10, 10)
	b := NewScreenRect(5, 5, 15, 15)

	got := a.Intersection(b)
	want := NewScreenRect(5, 5, 10, 10)
	if !got.Equals(want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	c := NewScreenRect(20, 20, 30, 30)
	if !a.Intersection(c).IsEmpty() {
		t.Error("disjoint rects should intersect to empty")
	}
}

func TestScreenRectInset(t *testing.T) {
	r := NewScreenRect(0, 0, 10, 10).Inset(1, 1, 1, 1)
	want := NewScreenRect(1, 1, 9, 9)
	if !r.Equals(want) {
		t.Errorf("expected %+v, got %+v", want, r)
	}
}

func TestScreenPosAdd(t *testing.T) {
	p := NewScreenPos(3, 4).Add(1, -2)
	if !p.Equals(NewScreenPos(4, 2)) {
		t.Errorf("expected (4,2), got (%d,%d)", p.Row, p.Col)
	}
}
