// Package main is the entry point for the gridtext pager.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/gridtext/internal/app"
	"github.com/dshills/gridtext/internal/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	// Create application
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Create terminal backend
	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	// Run the application
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var overflow string
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.Theme, "theme", "", "Theme name (default, dark, light) or theme file path")
	flag.StringVar(&opts.Theme, "t", "", "Theme name or theme file path (shorthand)")
	flag.BoolVar(&opts.Wrap, "wrap", false, "Word-wrap long lines instead of truncating")
	flag.BoolVar(&opts.Wrap, "w", false, "Word-wrap long lines (shorthand)")
	flag.StringVar(&opts.Align, "align", "left", "Text alignment (left, center, right)")
	flag.StringVar(&opts.Anchor, "anchor", "top", "Window anchor (top, bottom)")
	flag.IntVar(&opts.Scroll, "scroll", 0, "Initial scroll offset in display lines")
	flag.StringVar(&overflow, "overflow", "", "Filler character for rows scrolled past the content")
	flag.BoolVar(&opts.Border, "border", false, "Draw a border with the document title")
	flag.BoolVar(&opts.Border, "b", false, "Draw a border (shorthand)")
	flag.BoolVar(&opts.Highlight, "highlight", true, "Syntax highlight recognized sources")
	flag.BoolVar(&opts.NoColor, "no-color", false, "Use the terminal's default colors only")
	flag.IntVar(&opts.TabWidth, "tabs", 8, "Tab stop distance")
	flag.StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Append logs to a file instead of standard error")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gridtext - a rich-text terminal pager\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gridtext [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Reads standard input when no file is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gridtext README.md          Page a file\n")
		fmt.Fprintf(os.Stderr, "  gridtext -w -t dark main.go Wrap lines with the dark theme\n")
		fmt.Fprintf(os.Stderr, "  tail -n100 app.log | gridtext -anchor bottom -overflow '~'\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("gridtext %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if overflow != "" {
		opts.Overflow = []rune(overflow)[0]
	}

	// The remaining argument is the file to page
	args := flag.Args()
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one file, got %d\n", len(args))
		os.Exit(1)
	}
	if len(args) == 1 {
		opts.Path = args[0]
	}

	return opts
}
