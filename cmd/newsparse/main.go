package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/etree"
	"github.com/fwojciec/newsparse/gofeed"
	"github.com/fwojciec/newsparse/goquery"
	nphttp "github.com/fwojciec/newsparse/http"
	"github.com/fwojciec/newsparse/readability"
	"github.com/fwojciec/newsparse/rod"
	"github.com/fwojciec/newsparse/scrape"
	npslog "github.com/fwojciec/newsparse/slog"
	"github.com/fwojciec/newsparse/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by the extract command when no file is given.
	Stdin io.Reader

	// Fetcher replaces the HTTP fetcher for end-to-end testing.
	Fetcher newsparse.Fetcher

	// PageFetcher fetches article pages when set. When nil, --browser
	// starts a headless Chrome fetcher.
	PageFetcher newsparse.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Progress and log lines are written from concurrent article workers.
	stderr = &syncWriter{w: stderr}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsparse"),
		kong.Description("Extract structured content from news sites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsparse --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if kongCtx.Command() == "scrape" {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = nphttp.NewFetcher(nphttp.WithTimeout(cli.Scrape.Timeout))
		}
		logged := npslog.NewLoggingFetcher(fetcher, deps.Logger)
		defer logged.Close()

		pages := m.PageFetcher
		if cli.Scrape.Browser && pages == nil {
			browser, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Scrape.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			pages = npslog.NewLoggingFetcher(browser, deps.Logger)
			defer pages.Close()
		}

		deps.Scraper = &scrape.Scraper{
			Fetcher:     logged,
			PageFetcher: pages,
			FeedParsers: newFeedParsers(deps.Logger),
			Locators: func(site *newsparse.Site) newsparse.Locator {
				return newLocator(site.LocatorKind(), site.Body, site.Remove, site.KeepBreaks, deps.Logger)
			},
			Concurrency: cli.Scrape.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// newFeedParsers returns the feed parsers keyed by site feed format.
func newFeedParsers(logger *slog.Logger) map[string]newsparse.FeedParser {
	return map[string]newsparse.FeedParser{
		newsparse.FeedRSS:         npslog.NewLoggingFeedParser(gofeed.NewParser(), logger),
		newsparse.FeedNewsSitemap: npslog.NewLoggingFeedParser(etree.NewSitemapParser(), logger),
	}
}

// newLocator returns the body locator of the given kind. The body selector,
// remove list and keepBreaks apply to the selector kind only.
func newLocator(kind, body string, remove []string, keepBreaks bool, logger *slog.Logger) newsparse.Locator {
	var l newsparse.Locator
	switch kind {
	case newsparse.LocatorTrafilatura:
		l = trafilatura.NewLocator()
	case newsparse.LocatorReadability:
		l = readability.NewLocator()
	default:
		sel := goquery.NewLocator(body, remove...)
		if keepBreaks {
			sel.KeepBreaks()
		}
		l = sel
	}
	return npslog.NewLoggingLocator(l, logger)
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
