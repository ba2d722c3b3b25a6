package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/bloom"
	"github.com/fwojciec/newsparse/htmltomarkdown"
	"github.com/fwojciec/newsparse/scrape"
	"github.com/fwojciec/newsparse/yaml"
)

// Seen filter sizing for a fresh file.
const (
	seenCapacity = 100_000
	seenFPRate   = 0.001
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	sites, err := yaml.LoadSitesFile(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsparse.ErrorMessage(err))
		return err
	}
	if len(c.Site) > 0 {
		selected := make([]*newsparse.Site, 0, len(c.Site))
		for _, name := range c.Site {
			site, err := yaml.FindSite(sites, name)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", newsparse.ErrorMessage(err))
				return err
			}
			selected = append(selected, site)
		}
		sites = selected
	}

	var seen *bloom.Filter
	if c.Seen != "" {
		if seen, err = loadSeen(c.Seen); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsparse.ErrorMessage(err))
			return err
		}
		deps.Scraper.Seen = seen
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "%s: %d articles\n", event.Site, event.Total)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", scrape.TruncateURL(event.URL, 80), newsparse.ErrorMessage(event.Error))
		case scrape.ProgressSiteFailed:
			fmt.Fprintf(deps.Stderr, "%s: failed: %s\n", event.Site, newsparse.ErrorMessage(event.Error))
		}
	}

	result, scrapeErr := deps.Scraper.ScrapeSites(deps.Ctx, sites, progress)
	if result != nil {
		if err := writePosts(deps.Stdout, result.Posts, c.Format); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stderr, scrape.Summarize(result))
	}

	if seen != nil {
		if err := saveSeen(c.Seen, seen); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsparse.ErrorMessage(err))
			return err
		}
	}

	return scrapeErr
}

// writePosts writes posts in the given output format.
func writePosts(w io.Writer, posts []*newsparse.Post, format string) error {
	if format == "markdown" {
		conv := htmltomarkdown.NewConverter()
		for i, p := range posts {
			md, err := conv.ConvertPost(p)
			if err != nil {
				return fmt.Errorf("render post %s: %w", p.Link, err)
			}
			if i > 0 {
				fmt.Fprint(w, "\n---\n\n")
			}
			fmt.Fprintln(w, md)
		}
		return nil
	}

	if posts == nil {
		posts = []*newsparse.Post{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(posts)
}

// loadSeen reads the seen filter at path, or returns an empty filter if the
// file does not exist yet.
func loadSeen(path string) (*bloom.Filter, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return bloom.NewFilter(seenCapacity, seenFPRate), nil
	}
	if err != nil {
		return nil, newsparse.Errorf(newsparse.EINTERNAL, "open seen file: %v", err)
	}
	defer f.Close()
	return bloom.ReadFilter(f)
}

// saveSeen writes the filter to a temporary file and renames it over path.
func saveSeen(path string, seen *bloom.Filter) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return newsparse.Errorf(newsparse.EINTERNAL, "create seen file: %v", err)
	}
	if _, err := seen.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return newsparse.Errorf(newsparse.EINTERNAL, "write seen file: %v", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return newsparse.Errorf(newsparse.EINTERNAL, "close seen file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return newsparse.Errorf(newsparse.EINTERNAL, "save seen file: %v", err)
	}
	return nil
}
