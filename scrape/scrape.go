// Package scrape provides news scraping orchestration.
// It coordinates feed fetching, article fetching, body location and content
// extraction for configured sites.
package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of articles processed in parallel.
const DefaultConcurrency = 4

// Scraper orchestrates the scraping of news sites.
type Scraper struct {
	Fetcher newsparse.Fetcher

	// PageFetcher, if set, fetches article pages instead of Fetcher.
	// Feeds are always fetched with Fetcher.
	PageFetcher newsparse.Fetcher

	// FeedParsers are keyed by site feed format.
	FeedParsers map[string]newsparse.FeedParser

	// Locators returns the body locator of a site.
	Locators func(site *newsparse.Site) newsparse.Locator

	// Seen, if set, skips articles already scraped from another feed or
	// in a previous run.
	Seen newsparse.SeenFilter

	Concurrency int
}

// Result holds the outcome of a scrape operation.
type Result struct {
	Posts   []*newsparse.Post
	Failed  int
	Skipped int
}

// ProgressEvent reports progress during a scrape operation.
type ProgressEvent struct {
	Type      ProgressType
	Site      string
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
	ProgressSiteFailed
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// articleResult holds the outcome of processing a single feed item.
type articleResult struct {
	position int
	url      string
	post     *newsparse.Post
	err      error
}

// ScrapeSite scrapes the articles of one site in feed order.
// Article failures are reported through progress and counted; only
// failures affecting the whole site are returned as errors.
func (s *Scraper) ScrapeSite(ctx context.Context, site *newsparse.Site, progress ProgressFunc) (*Result, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	cfg, err := site.ExtractorConfig()
	if err != nil {
		return nil, err
	}
	extractor, err := newsparse.NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	parser, ok := s.FeedParsers[site.Format()]
	if !ok {
		return nil, newsparse.Errorf(newsparse.ENOTIMPLEMENTED, "no parser for feed format %q", site.Format())
	}

	feed, err := s.Fetcher.Fetch(ctx, site.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	feed, err = newsparse.ApplyRewrites(feed, site.FeedRewrites)
	if err != nil {
		return nil, err
	}
	items, err := parser.Parse(feed)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := &Result{}
	if site.Limit > 0 && len(items) > site.Limit {
		items = items[:site.Limit]
	}
	if s.Seen != nil {
		fresh := make([]*newsparse.FeedItem, 0, len(items))
		for _, item := range items {
			if s.Seen.TestAndAdd(item.Link) {
				result.Skipped++
				continue
			}
			fresh = append(fresh, item)
		}
		items = fresh
	}

	a := &article{
		Scraper:   s,
		site:      site,
		extractor: extractor,
		locator:   s.Locators(site),
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan articleResult, len(items))
	var completed atomic.Int64
	total := len(items)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Site:  site.Name,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, item := range items {
			g.Go(func() error {
				post, err := a.process(gctx, item)
				resultCh <- articleResult{position: i, url: item.Link, post: post, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in feed order.
	results := make([]articleResult, len(items))
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Site:      site.Name,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.url,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		}
		progress(event)
	}

	for _, r := range results {
		if r.err != nil {
			result.Failed++
			continue
		}
		result.Posts = append(result.Posts, r.post)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Site:      site.Name,
			Completed: total,
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// ScrapeSites scrapes the sites one after another. A site that fails as a
// whole is reported through progress and its error is joined into the
// returned error; the remaining sites are still scraped.
func (s *Scraper) ScrapeSites(ctx context.Context, sites []*newsparse.Site, progress ProgressFunc) (*Result, error) {
	total := &Result{}
	var errs []error
	for _, site := range sites {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		r, err := s.ScrapeSite(ctx, site, progress)
		if r != nil {
			total.Posts = append(total.Posts, r.Posts...)
			total.Failed += r.Failed
			total.Skipped += r.Skipped
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("site %s: %w", site.Name, err))
			if progress != nil {
				progress(ProgressEvent{
					Type:  ProgressSiteFailed,
					Site:  site.Name,
					URL:   site.FeedURL,
					Error: err,
				})
			}
		}
	}
	return total, errors.Join(errs...)
}

// article holds what is shared by the articles of one site.
type article struct {
	*Scraper
	site      *newsparse.Site
	extractor *newsparse.Extractor
	locator   newsparse.Locator
}

// process fetches, locates and extracts one feed item.
func (a *article) process(ctx context.Context, item *newsparse.FeedItem) (*newsparse.Post, error) {
	var page string
	if a.site.Source() == newsparse.BodyFromFeed {
		page = item.Content
		if page == "" {
			return nil, newsparse.Errorf(newsparse.ENOTFOUND, "feed item %s has no content", item.Link)
		}
	} else {
		fetcher := a.Fetcher
		if a.PageFetcher != nil {
			fetcher = a.PageFetcher
		}
		var err error
		if page, err = fetcher.Fetch(ctx, item.Link); err != nil {
			return nil, err
		}
	}
	page, err := newsparse.ApplyRewrites(page, a.site.PageRewrites)
	if err != nil {
		return nil, err
	}

	root, err := a.locator.Locate(page)
	if err != nil {
		return nil, err
	}

	var state *goquery.State
	if a.site.State != nil {
		// Pages without state are extracted without the fallback.
		state, _ = goquery.ParseState(page, *a.site.State)
	}

	summary := newsparse.Normalize(goquery.PlainText(item.Description))
	if a.site.IgnoreDescription {
		summary = ""
	}

	baseURL := a.site.BaseURL
	if baseURL == "" {
		baseURL = item.Link
	}
	extraction, err := a.extractor.Extract(newsparse.Input{
		Root:          root,
		BaseURL:       baseURL,
		Summary:       summary,
		ChildrenOnly:  !a.site.WalkRoot,
		ImageFallback: state.NextImage,
	})
	if err != nil {
		return nil, err
	}

	blocks := extraction.Blocks
	for _, src := range state.Embeds() {
		if b, ok := a.extractor.VideoBlock(src); ok {
			blocks = append(blocks, b)
		}
	}

	post := &newsparse.Post{
		ID:          PostID(item.Link),
		Site:        a.site.Name,
		Title:       newsparse.Normalize(item.Title),
		Description: extraction.Summary,
		Link:        item.Link,
		Image:       newsparse.ResolveURL(baseURL, newsparse.CleanURL(item.Image)),
		PublishedAt: item.PublishedAt,
		Items:       blocks,
	}
	if post.ContentHash, err = ComputeHash(blocks); err != nil {
		return nil, err
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	return post, nil
}

// PostID derives a stable post ID from the article link.
func PostID(link string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}

// ComputeHash computes a hash of the content blocks using xxhash.
func ComputeHash(blocks []newsparse.Block) (string, error) {
	data, err := json.Marshal(blocks)
	if err != nil {
		return "", newsparse.Errorf(newsparse.EINTERNAL, "failed to encode blocks: %v", err)
	}
	return fmt.Sprintf("%x", xxhash.Sum64(data)), nil
}
