package newsparse

import (
	"regexp"
	"strings"
)

// Locator kinds.
const (
	// LocatorSelector selects the body with the site's CSS selector.
	LocatorSelector = "selector"

	// LocatorTrafilatura lets trafilatura find the main content.
	LocatorTrafilatura = "trafilatura"

	// LocatorReadability lets readability find the main content.
	LocatorReadability = "readability"
)

// Feed formats.
const (
	// FeedRSS is an RSS or Atom feed.
	FeedRSS = "rss"

	// FeedNewsSitemap is a Google News sitemap.
	FeedNewsSitemap = "news-sitemap"
)

// Body sources.
const (
	// BodyFromPage fetches each article page.
	BodyFromPage = "page"

	// BodyFromFeed uses the full content embedded in the feed item.
	BodyFromFeed = "feed"
)

// Site describes one news source and how its articles are extracted.
type Site struct {
	Name    string `yaml:"name"`
	FeedURL string `yaml:"feed_url"`

	// FeedFormat is FeedRSS or FeedNewsSitemap. Defaults to FeedRSS.
	FeedFormat string `yaml:"feed_format,omitempty"`

	// BaseURL resolves relative URLs. Defaults to each article's link.
	BaseURL string `yaml:"base_url,omitempty"`

	// Locator is one of LocatorSelector, LocatorTrafilatura or
	// LocatorReadability. Defaults to LocatorSelector.
	Locator string `yaml:"locator,omitempty"`

	// Body is the CSS selector of the article body. Optional for
	// BodyFromFeed sites, where it defaults to the whole feed content.
	Body string `yaml:"body,omitempty"`

	// BodySource is BodyFromPage or BodyFromFeed. Defaults to BodyFromPage.
	BodySource string `yaml:"body_source,omitempty"`

	// Remove lists selectors pruned from the page before extraction.
	Remove []string `yaml:"remove,omitempty"`

	// KeepBreaks keeps <br> elements, which are pruned by default. Sites
	// that list br in ParsedEntities split paragraphs on them.
	KeepBreaks bool `yaml:"keep_breaks,omitempty"`

	// FeedRewrites and PageRewrites repair broken markup before parsing.
	FeedRewrites []Rewrite `yaml:"feed_rewrites,omitempty"`
	PageRewrites []Rewrite `yaml:"page_rewrites,omitempty"`

	Dedup               string   `yaml:"dedup"`
	SimilarityThreshold float64  `yaml:"similarity_threshold,omitempty"`
	ParsedEntities      []string `yaml:"parsed_entities,omitempty"`
	QuoteTags           []string `yaml:"quote_tags,omitempty"`
	PassThroughTags     []string `yaml:"pass_through_tags,omitempty"`
	SkipTags            []string `yaml:"skip_tags,omitempty"`
	IgnorePunctuation   bool     `yaml:"ignore_punctuation,omitempty"`

	// IgnoreDescription starts every article with an empty summary, so
	// DedupCapture takes the first paragraph even when the feed carries a
	// description.
	IgnoreDescription bool `yaml:"ignore_description,omitempty"`

	// WalkRoot extracts from the body element itself instead of from each
	// of its children.
	WalkRoot bool `yaml:"walk_root,omitempty"`

	// Limit caps the number of feed items processed. Zero means no limit.
	Limit int `yaml:"limit,omitempty"`

	// State reads image and video sources from page script state.
	State *StateSource `yaml:"state,omitempty"`
}

// Rewrite is a regular expression replacement applied to raw markup.
type Rewrite struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// StateSource locates JSON state assigned in a page script, such as
// window.__INITIAL_STATE__, and the list of article items within it.
type StateSource struct {
	// Marker identifies the script and precedes the JSON value.
	Marker string `yaml:"marker"`

	// Path is the dotted path to the item list within the JSON value.
	Path string `yaml:"path"`

	// ImagePlaceholder in image URLs is replaced by ImageReplacement.
	ImagePlaceholder string `yaml:"image_placeholder,omitempty"`
	ImageReplacement string `yaml:"image_replacement,omitempty"`

	// SkipLead drops the first media item, which duplicates the lead image.
	SkipLead bool `yaml:"skip_lead,omitempty"`
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	if !IsValidURL(s.FeedURL) {
		return Errorf(EINVALID, "site %s: feed URL must be an absolute URL", s.Name)
	}
	if s.BaseURL != "" && !IsValidURL(s.BaseURL) {
		return Errorf(EINVALID, "site %s: base URL must be an absolute URL", s.Name)
	}
	switch s.LocatorKind() {
	case LocatorSelector:
		// Feed content is a fragment; an empty selector takes all of it.
		if strings.TrimSpace(s.Body) == "" && s.Source() != BodyFromFeed {
			return Errorf(EINVALID, "site %s: body selector required", s.Name)
		}
	case LocatorTrafilatura, LocatorReadability:
	default:
		return Errorf(EINVALID, "site %s: unknown locator %q", s.Name, s.Locator)
	}
	switch s.Format() {
	case FeedRSS, FeedNewsSitemap:
	default:
		return Errorf(EINVALID, "site %s: unknown feed format %q", s.Name, s.FeedFormat)
	}
	switch s.Source() {
	case BodyFromPage, BodyFromFeed:
	default:
		return Errorf(EINVALID, "site %s: unknown body source %q", s.Name, s.BodySource)
	}
	if s.Source() == BodyFromFeed && s.Format() == FeedNewsSitemap {
		return Errorf(EINVALID, "site %s: news sitemaps carry no article content", s.Name)
	}
	if s.Limit < 0 {
		return Errorf(EINVALID, "site %s: limit must not be negative", s.Name)
	}
	for _, r := range append(append([]Rewrite{}, s.FeedRewrites...), s.PageRewrites...) {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return Errorf(EINVALID, "site %s: invalid rewrite pattern %q: %v", s.Name, r.Pattern, err)
		}
	}
	if s.State != nil && (s.State.Marker == "" || s.State.Path == "") {
		return Errorf(EINVALID, "site %s: state marker and path required", s.Name)
	}
	cfg, err := s.ExtractorConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return Errorf(EINVALID, "site %s: %s", s.Name, ErrorMessage(err))
	}
	return nil
}

// LocatorKind returns the locator kind with the default applied.
func (s *Site) LocatorKind() string {
	if s.Locator == "" {
		return LocatorSelector
	}
	return s.Locator
}

// Format returns the feed format with the default applied.
func (s *Site) Format() string {
	if s.FeedFormat == "" {
		return FeedRSS
	}
	return s.FeedFormat
}

// Source returns the body source with the default applied.
func (s *Site) Source() string {
	if s.BodySource == "" {
		return BodyFromPage
	}
	return s.BodySource
}

// ExtractorConfig returns the extraction engine configuration of the site.
func (s *Site) ExtractorConfig() (Config, error) {
	mode, err := ParseDedupMode(s.Dedup)
	if err != nil {
		return Config{}, Errorf(EINVALID, "site %s: %s", s.Name, ErrorMessage(err))
	}
	return Config{
		Dedup:               mode,
		SimilarityThreshold: s.SimilarityThreshold,
		ParsedEntityTags:    s.ParsedEntities,
		QuoteTags:           s.QuoteTags,
		PassThroughTags:     s.PassThroughTags,
		SkipTags:            s.SkipTags,
		IgnorePunctuation:   s.IgnorePunctuation,
	}, nil
}

// ApplyRewrites applies the rewrites to s in order.
func ApplyRewrites(s string, rewrites []Rewrite) (string, error) {
	for _, r := range rewrites {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return "", Errorf(EINVALID, "invalid rewrite pattern %q: %v", r.Pattern, err)
		}
		s = re.ReplaceAllString(s, r.Replace)
	}
	return s, nil
}
