package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pictable/internal/adapter"
	"github.com/mmcdole/pictable/internal/preview"
	"github.com/mmcdole/pictable/internal/records"
	"github.com/mmcdole/pictable/internal/source"
	"github.com/mmcdole/pictable/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// flags holds the command line options
type flags struct {
	version    bool
	print      bool
	configPath string
	view       viewOptions
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("pictable", flag.ContinueOnError)
	fs.BoolVar(&f.version, "v", false, "print version")
	fs.BoolVar(&f.version, "version", false, "print version")
	fs.BoolVar(&f.print, "print", false, "print one page and exit instead of starting the TUI")
	fs.StringVar(&f.configPath, "config", "", "path to a config file")
	fs.StringVar(&f.view.album, "album", "", "album id to show (0 or empty for all)")
	fs.StringVar(&f.view.query, "query", "", "fuzzy title filter")
	fs.IntVar(&f.view.page, "page", 1, "page to print, starting at 1")
	fs.IntVar(&f.view.pageSize, "page-size", 0, "rows per page, -1 for all (default from config)")

	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if f.version {
		fmt.Printf("pictable %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Load configuration
	var cfg *adapter.Config
	var err error
	if f.configPath != "" {
		cfg, err = adapter.LoadConfigFile(f.configPath)
	} else {
		cfg, err = adapter.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting pictable", "version", Version, "source", cfg.Source.URL)

	client := source.NewClient(cfg.Source.URL, cfg.Source.Timeout, logger)

	if f.view.pageSize == 0 {
		f.view.pageSize = cfg.Table.PageSize
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
	if f.print || !interactive {
		return runPrint(client, cfg, f.view, logger)
	}

	opts := tui.Options{
		Source:       client,
		Launcher:     adapter.NewLauncher(cfg.Viewer.Command, cfg.Viewer.Args, logger),
		PageSize:     f.view.pageSize,
		PageSizes:    cfg.Table.PageSizes,
		FetchTimeout: cfg.Source.Timeout,
		Logger:       logger,
	}
	if cfg.Preview.Enabled {
		renderer := preview.NewRenderer(cfg.Preview.Width, cfg.Preview.Height, logger)
		prefetcher := preview.NewPrefetcher(renderer, cfg.Preview.Workers, logger)
		defer prefetcher.Close()
		opts.Previews = prefetcher
	}

	model := tui.NewModel(opts)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runPrint fetches once and writes the requested page to stdout
func runPrint(client *source.Client, cfg *adapter.Config, opts viewOptions, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout)
	defer cancel()

	recs, err := client.FetchRecords(ctx)
	if err != nil {
		return fmt.Errorf("fetching records: %w", err)
	}

	store := applyView(records.New(cfg.Table.PageSize).Load(recs), opts)
	logger.Info("printing page", "page", store.PageIndex(), "visible", store.VisibleLen())

	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	fmt.Println(renderPage(store, width))
	return nil
}
