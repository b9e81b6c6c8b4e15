package app

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/gridtext/internal/backend"
	"github.com/dshills/gridtext/internal/highlight"
	"github.com/dshills/gridtext/internal/scroll"
	"github.com/dshills/gridtext/internal/theme"
	"github.com/dshills/gridtext/internal/widget"
)

// ThemeEnvVar names the environment variable consulted for the theme
// when no theme option is given.
const ThemeEnvVar = "GRIDTEXT_THEME"

// App is the pager application. It owns the document, the view state
// and the draw loop against the terminal backend.
type App struct {
	mu sync.RWMutex

	backend *backend.BufferedBackend
	logger  *Logger
	logFile *os.File

	doc   *Document
	theme theme.Theme

	// themePath is set when the theme came from a file, enabling
	// live reloads while the pager is running.
	themePath string
	watcher   *theme.Watcher

	hl *highlight.Highlighter

	view viewState

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once

	opts Options
}

// viewState holds the mutable presentation state of the pager.
type viewState struct {
	wrap     bool
	align    widget.Alignment
	anchor   scroll.Anchor
	offset   int
	overflow rune
}

// Options configures the application.
type Options struct {
	// Path is the file to display. Empty or "-" reads standard input.
	Path string

	// Theme selects a built-in theme name or a theme file path.
	// When empty the GRIDTEXT_THEME environment variable is consulted.
	Theme string

	// Wrap starts the pager in word-wrap mode instead of truncation.
	Wrap bool

	// Align sets the initial text alignment: "left", "center" or "right".
	Align string

	// Anchor sets the initial window anchor: "top" or "bottom".
	Anchor string

	// Scroll is the initial scroll offset in display lines.
	Scroll int

	// Overflow is the filler rune painted on rows scrolled past the
	// content in a bottom-anchored view. Zero disables the filler.
	Overflow rune

	// Border draws a border with the document title around the text.
	Border bool

	// Highlight enables syntax highlighting for recognized sources.
	Highlight bool

	// NoColor forces the terminal's default colors and disables
	// highlighting.
	NoColor bool

	// TabWidth is the tab stop distance. Defaults to 8.
	TabWidth int

	// LogLevel sets logging verbosity. Defaults to warn.
	LogLevel string

	// LogFile appends logs to a file instead of standard error.
	LogFile string
}

// New creates the application and loads the document.
func New(opts Options) (*App, error) {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 8
	}

	app := &App{
		opts:  opts,
		done:  make(chan struct{}),
		theme: theme.Default(),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *App) bootstrap() error {
	// 1. Logging
	logger, err := app.initLogger()
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.logger = logger
	SetLogger(logger)

	// 2. Theme
	if err := app.initTheme(); err != nil {
		return &InitError{Component: "theme", Err: err}
	}

	// 3. View state
	if err := app.initView(); err != nil {
		return &InitError{Component: "view", Err: err}
	}

	// 4. Document
	doc, err := LoadDocument(app.opts.Path, app.opts.TabWidth)
	if err != nil {
		return err
	}
	app.doc = doc

	// 5. Syntax highlighting
	if app.opts.Highlight && !app.opts.NoColor {
		app.hl = highlight.New(app.theme.Syntax)
	}
	app.doc.Restyle(app.hl, app.theme.Text)

	app.logger.Debug("loaded %s (%d bytes)", app.doc.Title, len(app.doc.Text))
	return nil
}

func (app *App) initLogger() (*Logger, error) {
	cfg := DefaultLoggerConfig()
	if app.opts.LogLevel != "" {
		cfg.Level = ParseLogLevel(app.opts.LogLevel)
	}
	if app.opts.LogFile != "" {
		f, err := os.OpenFile(app.opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		cfg.Output = f
		app.logFile = f
	}
	return NewLogger(cfg), nil
}

func (app *App) initTheme() error {
	if app.opts.NoColor {
		app.theme = theme.Default()
		return nil
	}

	name := app.opts.Theme
	if name == "" {
		name = os.Getenv(ThemeEnvVar)
	}

	th, err := theme.Resolve(name)
	if err != nil {
		return err
	}
	app.theme = th

	if name != "" {
		if _, berr := theme.Builtin(name); berr != nil {
			app.themePath = name
		}
	}
	return nil
}

func (app *App) initView() error {
	align, err := parseAlignment(app.opts.Align)
	if err != nil {
		return err
	}
	anchor, err := parseAnchor(app.opts.Anchor)
	if err != nil {
		return err
	}

	app.view = viewState{
		wrap:     app.opts.Wrap,
		align:    align,
		anchor:   anchor,
		offset:   app.opts.Scroll,
		overflow: app.opts.Overflow,
	}
	return nil
}

func parseAlignment(s string) (widget.Alignment, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return widget.AlignLeft, nil
	case "center", "centre":
		return widget.AlignCenter, nil
	case "right":
		return widget.AlignRight, nil
	default:
		return widget.AlignLeft, fmt.Errorf("unknown alignment %q", s)
	}
}

func parseAnchor(s string) (scroll.Anchor, error) {
	switch strings.ToLower(s) {
	case "", "top":
		return scroll.Top, nil
	case "bottom", "tail":
		return scroll.Bottom, nil
	default:
		return scroll.Top, fmt.Errorf("unknown anchor %q", s)
	}
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *App) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = backend.NewBufferedBackend(b)
	return nil
}

// Run starts the application main loop.
// Blocks until the user quits or Shutdown is called.
func (app *App) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		return ErrNoBackend
	}

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	if app.logFile != nil {
		defer app.logFile.Close()
	}

	app.backend.HideCursor()
	app.backend.EnableMouse()

	if app.themePath != "" {
		w, err := theme.NewWatcher(app.themePath, app.onThemeReload, app.onThemeError)
		if err != nil {
			app.logger.Warn("theme watching unavailable: %v", err)
		} else {
			app.watcher = w
			defer app.watcher.Close()
		}
	}

	app.clampOffset()

	return app.eventLoop()
}

// Shutdown requests the event loop to stop. Safe to call from any
// goroutine and more than once.
func (app *App) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
	})
	if app.running.Load() && app.backend != nil {
		app.backend.PostEvent(backend.Event{Type: backend.EventWake})
	}
}

// IsRunning returns true if the application is running.
func (app *App) IsRunning() bool {
	return app.running.Load()
}

// Document returns the loaded document.
func (app *App) Document() *Document {
	return app.doc
}

// Theme returns the active theme.
func (app *App) Theme() theme.Theme {
	app.mu.RLock()
	defer app.mu.RUnlock()

	return app.theme
}

// Logger returns the application's logger instance.
func (app *App) Logger() *Logger {
	if app.logger == nil {
		return GetLogger()
	}
	return app.logger
}

// onThemeReload installs a freshly loaded theme and wakes the event
// loop so the screen repaints with the new styles.
func (app *App) onThemeReload(th theme.Theme) {
	app.mu.Lock()
	app.theme = th
	if app.hl != nil {
		app.hl = highlight.New(th.Syntax)
	}
	app.doc.Restyle(app.hl, th.Text)
	app.mu.Unlock()

	app.logger.Info("theme %s reloaded", th.Name)
	app.backend.PostEvent(backend.Event{Type: backend.EventWake})
}

func (app *App) onThemeError(err error) {
	app.logger.Warn("theme reload: %v", err)
}
