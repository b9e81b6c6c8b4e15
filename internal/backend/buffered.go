package backend

import (
	"sync"

	"github.com/dshills/gridtext/internal/core"
	"github.com/dshills/gridtext/internal/grid"
)

// BufferedBackend wraps a Backend with a double-buffered grid.
// Widgets repaint the whole grid each frame; Show flushes only the
// cells that differ from what the display already holds.
type BufferedBackend struct {
	backend       Backend
	buffer        *grid.Buffer
	resizeHandler func(width, height int)
	mu            sync.Mutex
}

// NewBufferedBackend creates a buffered backend over b. The grid
// adopts the display size on Init and follows resize events.
func NewBufferedBackend(b Backend) *BufferedBackend {
	w, h := b.Size()
	bb := &BufferedBackend{
		backend: b,
		buffer:  grid.NewBuffer(w, h),
	}
	b.OnResize(bb.handleResize)
	return bb
}

func (b *BufferedBackend) handleResize(width, height int) {
	b.mu.Lock()
	b.buffer.Resize(width, height)
	handler := b.resizeHandler
	b.mu.Unlock()

	if handler != nil {
		handler(width, height)
	}
}

func (b *BufferedBackend) Init() error {
	if err := b.backend.Init(); err != nil {
		return err
	}

	width, height := b.backend.Size()
	b.mu.Lock()
	b.buffer.Resize(width, height)
	b.mu.Unlock()
	return nil
}

func (b *BufferedBackend) Shutdown() {
	b.backend.Shutdown()
}

func (b *BufferedBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buffer.Size()
}

func (b *BufferedBackend) OnResize(callback func(width, height int)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resizeHandler = callback
}

func (b *BufferedBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buffer.SetCell(x, y, cell)
}

// SetString writes a string into the grid and returns the column
// after the last written cell.
func (b *BufferedBackend) SetString(x, y int, s string, style core.Style) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buffer.SetString(x, y, s, style)
}

// Fill fills a rectangle of the grid with the given cell.
func (b *BufferedBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buffer.Fill(rect, cell)
}

func (b *BufferedBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buffer.Clear()
}

// Show flushes changed cells to the wrapped backend and syncs the
// grid planes.
func (b *BufferedBackend) Show() {
	b.mu.Lock()
	changes := b.buffer.ComputeDiff()
	for _, ch := range changes {
		b.backend.SetCell(ch.X, ch.Y, ch.Cell)
	}
	b.buffer.Sync()
	b.mu.Unlock()

	if len(changes) > 0 {
		b.backend.Show()
	}
}

func (b *BufferedBackend) HideCursor() {
	b.backend.HideCursor()
}

func (b *BufferedBackend) PollEvent() Event {
	return b.backend.PollEvent()
}

func (b *BufferedBackend) PostEvent(event Event) {
	b.backend.PostEvent(event)
}

func (b *BufferedBackend) HasTrueColor() bool {
	return b.backend.HasTrueColor()
}

func (b *BufferedBackend) EnableMouse() {
	b.backend.EnableMouse()
}

func (b *BufferedBackend) DisableMouse() {
	b.backend.DisableMouse()
}

// GetCell returns the cell last drawn at the given position.
func (b *BufferedBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buffer.GetCell(x, y)
}
