package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/gridtext/internal/backend"
	"github.com/dshills/gridtext/internal/scroll"
	"github.com/dshills/gridtext/internal/theme"
	"github.com/dshills/gridtext/internal/widget"
)

const tenLines = "l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\n"

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func newTestApp(t *testing.T, opts Options, width, height int) (*App, *backend.NullBackend) {
	t.Helper()
	if opts.Theme == "" {
		opts.Theme = "default"
	}

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	nb := backend.NewNullBackend(width, height)
	if err := app.SetBackend(nb); err != nil {
		t.Fatalf("SetBackend failed: %v", err)
	}
	return app, nb
}

// runWithEvents feeds the events plus a final quit key through the
// application and returns after Run finishes.
func runWithEvents(t *testing.T, app *App, nb *backend.NullBackend, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		nb.PostEvent(ev)
	}
	nb.PostEvent(keyRune('q'))

	if err := app.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func keyRune(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func keyEvent(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func rowText(nb *backend.NullBackend, y int) string {
	return strings.TrimRight(nb.Row(y), " ")
}

func TestNewAppDefaults(t *testing.T) {
	path := writeSample(t, "sample.txt", "hello\nworld\n")

	app, err := New(Options{Path: path, Theme: "default"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if app.doc.Title != "sample.txt" {
		t.Errorf("expected title 'sample.txt', got %q", app.doc.Title)
	}
	if app.view.wrap {
		t.Error("expected wrap off by default")
	}
	if app.view.align != widget.AlignLeft {
		t.Errorf("expected left alignment, got %v", app.view.align)
	}
	if app.view.anchor != scroll.Top {
		t.Errorf("expected top anchor, got %v", app.view.anchor)
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() false before Run()")
	}
}

func TestNewAppUnknownAlignment(t *testing.T) {
	path := writeSample(t, "sample.txt", "hi\n")

	_, err := New(Options{Path: path, Theme: "default", Align: "diagonal"})
	if err == nil {
		t.Fatal("expected error for unknown alignment")
	}

	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %T", err)
	}
	if initErr.Component != "view" {
		t.Errorf("expected component 'view', got %q", initErr.Component)
	}
}

func TestNewAppMissingFile(t *testing.T) {
	_, err := New(Options{Path: filepath.Join(t.TempDir(), "nope.txt"), Theme: "default"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T", err)
	}
}

func TestNewAppThemeFromEnv(t *testing.T) {
	t.Setenv(ThemeEnvVar, "dark")
	path := writeSample(t, "sample.txt", "hi\n")

	app, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if app.Theme().Name != "dark" {
		t.Errorf("expected theme 'dark' from environment, got %q", app.Theme().Name)
	}
}

func TestNewAppNoColor(t *testing.T) {
	path := writeSample(t, "main.go", "package main\n")

	app, err := New(Options{Path: path, Theme: "dark", NoColor: true, Highlight: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if app.Theme().Name != "default" {
		t.Errorf("expected default theme with NoColor, got %q", app.Theme().Name)
	}
	if app.doc.Language != "" {
		t.Errorf("expected highlighting disabled, got language %q", app.doc.Language)
	}
}

func TestAppRunWithoutBackend(t *testing.T) {
	path := writeSample(t, "sample.txt", "hi\n")

	app, err := New(Options{Path: path, Theme: "default"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestAppQuitKeys(t *testing.T) {
	quits := []backend.Event{
		keyRune('q'),
		keyEvent(backend.KeyEscape),
		keyEvent(backend.KeyCtrlC),
	}

	for _, quit := range quits {
		path := writeSample(t, "sample.txt", "hi\n")
		app, nb := newTestApp(t, Options{Path: path}, 20, 6)

		nb.PostEvent(quit)
		if err := app.Run(); err != nil {
			t.Fatalf("Run failed on quit event %v: %v", quit, err)
		}
		if app.IsRunning() {
			t.Error("expected IsRunning() false after quit")
		}
	}
}

func TestAppRendersDocument(t *testing.T) {
	path := writeSample(t, "sample.txt", "hello\nworld\n")
	app, nb := newTestApp(t, Options{Path: path}, 20, 6)

	runWithEvents(t, app, nb)

	if got := rowText(nb, 0); got != "hello" {
		t.Errorf("expected row 0 'hello', got %q", got)
	}
	if got := rowText(nb, 1); got != "world" {
		t.Errorf("expected row 1 'world', got %q", got)
	}

	status := rowText(nb, 5)
	if !strings.Contains(status, "sample.txt") {
		t.Errorf("expected title in status line, got %q", status)
	}
	if !strings.Contains(status, "ALL") {
		t.Errorf("expected ALL position in status line, got %q", status)
	}
}

func TestAppScrollDown(t *testing.T) {
	path := writeSample(t, "sample.txt", tenLines)
	app, nb := newTestApp(t, Options{Path: path}, 20, 6)

	runWithEvents(t, app, nb, keyRune('j'), keyRune('j'))

	if got := rowText(nb, 0); got != "l2" {
		t.Errorf("expected row 0 'l2' after scrolling, got %q", got)
	}
	if got := rowText(nb, 4); got != "l6" {
		t.Errorf("expected row 4 'l6' after scrolling, got %q", got)
	}
	if status := rowText(nb, 5); !strings.Contains(status, "70%") {
		t.Errorf("expected 70%% in status line, got %q", status)
	}
}

func TestAppScrollClampedAtEnd(t *testing.T) {
	path := writeSample(t, "sample.txt", tenLines)
	app, nb := newTestApp(t, Options{Path: path}, 20, 6)

	runWithEvents(t, app, nb, keyRune('G'), keyRune('j'))

	if got := rowText(nb, 0); got != "l5" {
		t.Errorf("expected row 0 'l5' at end, got %q", got)
	}
	if status := rowText(nb, 5); !strings.Contains(status, "END") {
		t.Errorf("expected END in status line, got %q", status)
	}
}

func TestAppPageAndHalfPage(t *testing.T) {
	path := writeSample(t, "sample.txt", tenLines)
	app, nb := newTestApp(t, Options{Path: path}, 20, 6)

	// Page down five lines, then half a page (three) back up.
	runWithEvents(t, app, nb, keyEvent(backend.KeyPageDown), keyEvent(backend.KeyCtrlU))

	if got := rowText(nb, 0); got != "l2" {
		t.Errorf("expected row 0 'l2', got %q", got)
	}
}

func TestAppHomeAfterEnd(t *testing.T) {
	path := writeSample(t, "sample.txt", tenLines)
	app, nb := newTestApp(t, Options{Path: path}, 20, 6)

	runWithEvents(t, app, nb, keyEvent(backend.KeyEnd), keyEvent(backend.KeyHome))

	if got := rowText(nb, 0); got != "l0" {
		t.Errorf("expected row 0 'l0' back at start, got %q", got)
	}
}

func TestAppBottomAnchor(t *testing.T) {
	path := writeSample(t, "sample.txt", tenLines)
	app, nb := newTestApp(t, Options{Path: path, Anchor: "bottom"}, 30, 6)

	runWithEvents(t, app, nb)

	if got := rowText(nb, 0); got != "l5" {
		t.Errorf("expected row 0 'l5' in tail view, got %q", got)
	}
	if got := rowText(nb, 4); got != "l9" {
		t.Errorf("expected row 4 'l9' in tail view, got %q", got)
	}

	status := rowText(nb, 5)
	if !strings.Contains(status, "tail") {
		t.Errorf("expected tail indicator in status line, got %q", status)
	}
	if !strings.Contains(status, "END") {
		t.Errorf("expected END position in status line, got %q", status)
	}
}

func TestAppBottomAnchorScrollUp(t *testing.T) {
	path := writeSample(t, "sample.txt", tenLines)
	app, nb := newTestApp(t, Options{Path: path, Anchor: "bottom"}, 20, 6)

	runWithEvents(t, app, nb, keyRune('k'))

	if got := rowText(nb, 0); got != "l4" {
		t.Errorf("expected row 0 'l4' after scrolling up, got %q", got)
	}
}

func TestAppWrapToggle(t *testing.T) {
	path := writeSample(t, "sample.txt", "hello world this is long\n")
	app, nb := newTestApp(t, Options{Path: path}, 10, 5)

	runWithEvents(t, app, nb, keyRune('w'))

	want := []string{"hello", "world this", "is long"}
	for y, expected := range want {
		if got := rowText(nb, y); got != expected {
			t.Errorf("row %d: expected %q, got %q", y, expected, got)
		}
	}
}

func TestAppAlignmentCycle(t *testing.T) {
	tests := []struct {
		name     string
		presses  int
		expected string
	}{
		{"center", 1, "    hi"},
		{"right", 2, "        hi"},
		{"back to left", 3, "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSample(t, "sample.txt", "hi\n")
			app, nb := newTestApp(t, Options{Path: path}, 10, 5)

			events := make([]backend.Event, tt.presses)
			for i := range events {
				events[i] = keyRune('a')
			}
			runWithEvents(t, app, nb, events...)

			if got := rowText(nb, 0); got != tt.expected {
				t.Errorf("expected row %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestAppAnchorToggleKeepsWindow(t *testing.T) {
	path := writeSample(t, "sample.txt", tenLines)
	app, nb := newTestApp(t, Options{Path: path}, 20, 6)

	runWithEvents(t, app, nb, keyRune('j'), keyRune('j'), keyRune('b'))

	if app.view.anchor != scroll.Bottom {
		t.Fatalf("expected bottom anchor after toggle, got %v", app.view.anchor)
	}
	if got := rowText(nb, 0); got != "l2" {
		t.Errorf("expected window to stay at 'l2' after anchor toggle, got %q", got)
	}
}

func TestAppMouseWheel(t *testing.T) {
	path := writeSample(t, "sample.txt", tenLines)
	app, nb := newTestApp(t, Options{Path: path}, 20, 6)

	wheel := backend.Event{Type: backend.EventMouse, MouseButton: backend.MouseWheelDown}
	runWithEvents(t, app, nb, wheel)

	if got := rowText(nb, 0); got != "l3" {
		t.Errorf("expected row 0 'l3' after wheel scroll, got %q", got)
	}
}

func TestAppResize(t *testing.T) {
	path := writeSample(t, "sample.txt", tenLines)
	app, nb := newTestApp(t, Options{Path: path}, 20, 6)

	nb.Resize(20, 8)
	runWithEvents(t, app, nb, backend.Event{Type: backend.EventResize, Width: 20, Height: 8})

	if got := rowText(nb, 6); got != "l6" {
		t.Errorf("expected row 6 'l6' after resize, got %q", got)
	}
	if status := rowText(nb, 7); !strings.Contains(status, "sample.txt") {
		t.Errorf("expected status line on last row after resize, got %q", status)
	}
}

func TestAppOverflowTail(t *testing.T) {
	path := writeSample(t, "sample.txt", "l0\nl1\n")
	app, nb := newTestApp(t, Options{Path: path, Anchor: "bottom", Overflow: '~'}, 10, 4)

	runWithEvents(t, app, nb, keyRune('k'))

	if got := rowText(nb, 0); got != "~" {
		t.Errorf("expected filler row, got %q", got)
	}
	if got := rowText(nb, 1); got != "l0" {
		t.Errorf("expected 'l0' below filler, got %q", got)
	}
	if got := rowText(nb, 2); got != "l1" {
		t.Errorf("expected 'l1' below filler, got %q", got)
	}
}

func TestAppBorder(t *testing.T) {
	path := writeSample(t, "sample.txt", "hi\n")
	app, nb := newTestApp(t, Options{Path: path, Border: true}, 10, 5)

	runWithEvents(t, app, nb)

	if got := rowText(nb, 0); got != "┌sample.t┐" {
		t.Errorf("expected titled border, got %q", got)
	}
	if got := rowText(nb, 1); got != "│hi      │" {
		t.Errorf("expected bordered content, got %q", got)
	}
	if got := rowText(nb, 3); got != "└────────┘" {
		t.Errorf("expected bottom border, got %q", got)
	}
}

func TestAppHighlightedStatusLanguage(t *testing.T) {
	path := writeSample(t, "main.go", "package main\n\nfunc main() {}\n")
	app, nb := newTestApp(t, Options{Path: path, Highlight: true}, 40, 6)

	runWithEvents(t, app, nb)

	if app.doc.Language != "Go" {
		t.Fatalf("expected language 'Go', got %q", app.doc.Language)
	}
	if status := rowText(nb, 5); !strings.Contains(status, "Go") {
		t.Errorf("expected language in status line, got %q", status)
	}
}

func TestAppThemeReloadRepaints(t *testing.T) {
	path := writeSample(t, "sample.txt", "hi\n")
	app, nb := newTestApp(t, Options{Path: path}, 20, 6)

	dark, err := theme.Builtin("dark")
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}

	// Install the theme the way the watcher does, then run; the
	// queued wake is drained before the quit key.
	app.onThemeReload(dark)
	runWithEvents(t, app, nb)

	if got := nb.GetCell(0, 0).Style.Foreground; got != dark.Text.Foreground {
		t.Errorf("expected reloaded foreground %v, got %v", dark.Text.Foreground, got)
	}
	if app.Theme().Name != "dark" {
		t.Errorf("expected theme 'dark' after reload, got %q", app.Theme().Name)
	}
}

func TestAppShutdownUnblocksRun(t *testing.T) {
	path := writeSample(t, "sample.txt", "hi\n")
	app, _ := newTestApp(t, Options{Path: path}, 20, 6)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !app.IsRunning() {
		t.Fatal("Run did not start")
	}

	app.Shutdown()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run returned error after Shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestAppSetBackendWhileRunning(t *testing.T) {
	path := writeSample(t, "sample.txt", "hi\n")
	app, _ := newTestApp(t, Options{Path: path}, 20, 6)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !app.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if err := app.SetBackend(backend.NewNullBackend(10, 4)); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
	if err := app.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning from second Run, got %v", err)
	}

	app.Shutdown()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestPositionLabel(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		anchor   scroll.Anchor
		height   int
		total    int
		expected string
	}{
		{"short content", 0, scroll.Top, 10, 5, "ALL"},
		{"exact fit", 0, scroll.Top, 5, 5, "ALL"},
		{"at start", 0, scroll.Top, 5, 10, "TOP"},
		{"at end", 5, scroll.Top, 5, 10, "END"},
		{"midway", 2, scroll.Top, 5, 10, "70%"},
		{"tail at end", 0, scroll.Bottom, 5, 10, "END"},
		{"tail at start", 5, scroll.Bottom, 5, 10, "TOP"},
		{"tail midway", 2, scroll.Bottom, 5, 10, "80%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := positionLabel(tt.offset, tt.anchor, tt.height, tt.total)
			if result != tt.expected {
				t.Errorf("positionLabel() = %q, expected %q", result, tt.expected)
			}
		})
	}
}
