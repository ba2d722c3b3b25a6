package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsparse/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every fetch and parse to stderr"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape the articles of configured sites"`
	Extract ExtractCmd `cmd:"" help:"Extract content blocks from an HTML document"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Config      string        `short:"c" default:"sites.yaml" help:"Sites configuration file"`
	Site        []string      `short:"s" name:"site" help:"Scrape only the named site (repeatable)"`
	Format      string        `short:"f" enum:"json,markdown" default:"json" help:"Output format (json, markdown)"`
	Concurrency int           `short:"n" default:"4" help:"Concurrent article limit per site"`
	Timeout     time.Duration `short:"t" default:"15s" help:"Fetch timeout per request"`
	Seen        string        `help:"File remembering scraped links between runs"`
	Browser     bool          `help:"Render article pages in headless Chrome"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File       string   `arg:"" optional:"" help:"HTML file to extract (default: stdin)"`
	Locator    string   `short:"l" enum:"selector,trafilatura,readability" default:"selector" help:"Body locator (selector, trafilatura, readability)"`
	Selector   string   `short:"s" default:"body" help:"CSS selector of the article body"`
	Remove     []string `short:"r" help:"Selector pruned before extraction (repeatable)"`
	KeepBreaks bool     `name:"keep-breaks" help:"Keep <br> elements instead of pruning them"`
	BaseURL    string   `short:"b" name:"base-url" help:"Base URL resolving relative links"`
	Summary    string   `help:"Article summary checked for duplicated text"`
	Dedup      string   `short:"d" default:"similarity" help:"Summary dedup mode (similarity, substring, capture)"`
	Threshold  float64  `default:"98" help:"Similarity percentage treated as duplicate"`
	Entities   []string `help:"Tags never flattened into text (repeatable)"`
	WalkRoot   bool     `name:"walk-root" help:"Extract from the body element itself instead of its children"`
	Format     string   `short:"f" enum:"json,markdown" default:"json" help:"Output format (json, markdown)"`
}
