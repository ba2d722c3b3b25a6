package newsparse

import (
	"slices"
	"strings"
)

// DedupMode selects how body text is checked against the article summary.
type DedupMode int

// Summary dedup policies. The zero value is deliberately invalid: every site
// must pick the policy that matches how its summary relates to its body.
const (
	// DedupSimilarity drops text whose similarity to the summary reaches
	// the configured threshold.
	DedupSimilarity DedupMode = iota + 1

	// DedupSubstring drops text that appears verbatim inside the summary.
	DedupSubstring

	// DedupCapture makes the first accepted text the summary instead of a
	// block. Used by sources whose feed carries no description.
	DedupCapture
)

var dedupModeNames = map[DedupMode]string{
	DedupSimilarity: "similarity",
	DedupSubstring:  "substring",
	DedupCapture:    "capture",
}

func (m DedupMode) String() string {
	if name, ok := dedupModeNames[m]; ok {
		return name
	}
	return "unset"
}

// ParseDedupMode parses a dedup mode name.
func ParseDedupMode(s string) (DedupMode, error) {
	for mode, name := range dedupModeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return mode, nil
		}
	}
	return 0, Errorf(EINVALID, "unknown dedup mode %q (want similarity, substring or capture)", s)
}

// DefaultSimilarityThreshold is the similarity percentage at or above which
// text is considered already covered by the summary.
const DefaultSimilarityThreshold = 98.0

// DefaultParsedEntityTags are the tags that must never be flattened into
// plain text.
var DefaultParsedEntityTags = []string{"a", "img", "blockquote"}

// Config configures an Extractor.
type Config struct {
	// Dedup selects the summary dedup policy. Required.
	Dedup DedupMode

	// SimilarityThreshold is used by DedupSimilarity.
	// Defaults to DefaultSimilarityThreshold.
	SimilarityThreshold float64

	// ParsedEntityTags force a container to be decomposed when any
	// descendant carries one of them. Defaults to DefaultParsedEntityTags.
	ParsedEntityTags []string

	// QuoteTags are emitted as Quote blocks. Defaults to blockquote.
	QuoteTags []string

	// PassThroughTags are traversed without emitting a block for the
	// wrapper. Defaults to figcaption.
	PassThroughTags []string

	// SkipTags are dropped along with their subtree.
	SkipTags []string

	// VideoHosts recognize video embeds and links.
	// Defaults to DefaultVideoHosts. Video blocks carry YouTube IDs, so any
	// host with an IDGroup must capture YouTube IDs; other platforms belong
	// in link-only hosts.
	VideoHosts []VideoHost

	// IgnorePunctuation treats text made only of commas and periods as empty.
	IgnorePunctuation bool
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if _, ok := dedupModeNames[c.Dedup]; !ok {
		return Errorf(EINVALID, "dedup mode required")
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 100 {
		return Errorf(EINVALID, "similarity threshold must be between 0 and 100, got %v", c.SimilarityThreshold)
	}
	for _, h := range c.VideoHosts {
		if h.Pattern == nil {
			return Errorf(EINVALID, "video host %q pattern required", h.Name)
		}
	}
	return nil
}

// Extractor turns article body nodes into content blocks.
// It holds only read-only configuration and is safe for concurrent use.
type Extractor struct {
	classifier *Classifier
	dedup      DedupMode
	threshold  float64
	entities   []string
	videoHosts []VideoHost
	hasActual  func(string) bool
}

// NewExtractor returns an Extractor for the given configuration.
func NewExtractor(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	threshold := cfg.SimilarityThreshold
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	entities := cfg.ParsedEntityTags
	if entities == nil {
		entities = DefaultParsedEntityTags
	}
	quoteTags := cfg.QuoteTags
	if quoteTags == nil {
		quoteTags = []string{"blockquote"}
	}
	passThrough := cfg.PassThroughTags
	if passThrough == nil {
		passThrough = []string{"figcaption"}
	}
	hosts := cfg.VideoHosts
	if hosts == nil {
		hosts = DefaultVideoHosts()
	}
	hasActual := HasActualText
	if cfg.IgnorePunctuation {
		hasActual = HasActualTextIgnoringPunctuation
	}

	return &Extractor{
		classifier: NewClassifier(quoteTags, passThrough, cfg.SkipTags),
		dedup:      cfg.Dedup,
		threshold:  threshold,
		entities:   slices.Clone(entities),
		videoHosts: slices.Clone(hosts),
		hasActual:  hasActual,
	}, nil
}

// Input is one extraction request.
type Input struct {
	// Root is the located article body.
	Root Node

	// BaseURL resolves relative image and link URLs.
	BaseURL string

	// Summary is the article description checked for duplicated text.
	Summary string

	// SkipText suppresses text blocks while still collecting media.
	SkipText bool

	// ChildrenOnly walks each child of Root instead of Root itself, so a
	// body without media still yields one block per paragraph.
	ChildrenOnly bool

	// ImageFallback supplies an image URL for img elements without src,
	// typically from state embedded in a page script. Optional.
	ImageFallback func() string
}

// Extraction is the result of one extraction.
type Extraction struct {
	Blocks []Block `json:"blocks"`

	// Summary is the input summary, or the captured first paragraph under
	// DedupCapture.
	Summary string `json:"summary"`
}

// Extract walks the input subtree and returns its content blocks in
// document order. Malformed nodes, unresolvable URLs and empty text never
// fail the walk; they only drop the affected block. Returns ENOTFOUND if the
// root is missing or has no content at all.
func (e *Extractor) Extract(in Input) (*Extraction, error) {
	if in.Root == nil {
		return nil, Errorf(ENOTFOUND, "article body not found")
	}
	if isEmptyNode(in.Root) {
		return nil, Errorf(ENOTFOUND, "article body is empty")
	}

	w := &walker{
		Extractor:     e,
		baseURL:       in.BaseURL,
		summary:       in.Summary,
		imageFallback: in.ImageFallback,
	}
	if in.ChildrenOnly {
		for _, child := range in.Root.Children() {
			w.walk(child, in.SkipText)
		}
	} else {
		w.walk(in.Root, in.SkipText)
	}

	return &Extraction{Blocks: w.blocks, Summary: w.summary}, nil
}

// isEmptyNode reports whether n has neither text, children nor media of
// its own.
func isEmptyNode(n Node) bool {
	if hasText(n.Text()) || len(n.Children()) > 0 {
		return false
	}
	switch n.Tag() {
	case "img", "iframe", "video":
		return false
	}
	return true
}

// VideoBlock converts a video embed source into a block: a Video block for
// hosts exposing an ID, a Link block for link-only hosts. Returns false when
// the source matches no known host or does not form a valid URL.
func (e *Extractor) VideoBlock(src string) (Block, bool) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Block{}, false
	}
	for _, h := range e.videoHosts {
		id, ok := h.Match(src)
		if !ok {
			continue
		}
		if id != "" {
			return VideoBlock(id), true
		}
		link := CleanURL(embedURL(src))
		if IsValidURL(link) {
			return LinkBlock(link, ""), true
		}
		return Block{}, false
	}
	return Block{}, false
}

// videoID returns the platform ID if u belongs to a host exposing one.
func (e *Extractor) videoID(u string) string {
	for _, h := range e.videoHosts {
		if id, ok := h.Match(u); ok && id != "" {
			return id
		}
	}
	return ""
}

// walker carries the state of a single extraction.
type walker struct {
	*Extractor
	baseURL       string
	summary       string
	imageFallback func() string
	blocks        []Block
}

func (w *walker) emit(b Block) {
	w.blocks = append(w.blocks, b)
}

func (w *walker) walk(n Node, skipText bool) {
	switch w.classifier.Classify(n) {
	case KindIgnore, KindSkip:
		return
	case KindPassThrough:
		for _, child := range n.Children() {
			w.walk(child, false)
		}
	case KindHeading:
		text := Normalize(n.Text())
		if w.hasActual(text) {
			w.emit(HeaderBlock(text, HeadingLevel(n)))
		}
	case KindQuote:
		if !hasText(n.Text()) {
			w.walkContainer(n, skipText)
			return
		}
		text := Normalize(n.Text())
		if w.hasActual(text) {
			w.emit(QuoteBlock(text))
		}
	case KindImage:
		w.image(n)
	case KindVideo:
		src, _ := n.Attr("src")
		if b, ok := w.VideoBlock(src); ok {
			w.emit(b)
		}
	case KindLink:
		if !hasText(n.Text()) {
			w.walkContainer(n, skipText)
			return
		}
		w.link(n)
	case KindText:
		if !skipText && hasText(n.Text()) {
			w.text(n.Text())
		}
	case KindContainer:
		w.walkContainer(n, skipText)
	}
}

// walkContainer absorbs a subtree as one text block unless it holds tags
// that must be emitted on their own, in which case it recurses. With text
// skipped there is nothing to absorb, so it always recurses for media.
func (w *walker) walkContainer(n Node, skipText bool) {
	if skipText || ContainsAny(n, w.entities) {
		for _, child := range n.Children() {
			w.walk(child, skipText)
		}
		return
	}
	w.text(n.Text())
}

func (w *walker) image(n Node) {
	src, _ := n.Attr("src")
	src = strings.TrimSpace(src)
	if src == "" && w.imageFallback != nil {
		src = strings.TrimSpace(w.imageFallback())
	}
	if src == "" {
		return
	}
	u := ResolveURL(w.baseURL, CleanURL(src))
	if u == "" {
		return
	}
	alt, _ := n.Attr("alt")
	w.emit(ImageBlock(u, Normalize(alt)))
}

func (w *walker) link(n Node) {
	href, _ := n.Attr("href")
	href = strings.TrimSpace(href)
	if href == "" {
		return
	}
	if id := w.videoID(href); id != "" {
		w.emit(VideoBlock(id))
		return
	}
	u := ResolveURL(w.baseURL, CleanURL(href))
	if !IsValidURL(u) {
		return
	}
	w.emit(LinkBlock(u, Normalize(n.Text())))
}

func (w *walker) text(raw string) {
	text := Normalize(raw)
	if !w.hasActual(text) {
		return
	}
	switch w.dedup {
	case DedupSimilarity:
		if SimilarText(text, w.summary) >= w.threshold {
			return
		}
	case DedupSubstring:
		if len(text) <= len(w.summary) && strings.Contains(w.summary, text) {
			return
		}
	case DedupCapture:
		if w.summary == "" {
			w.summary = text
			return
		}
	}
	w.emit(TextBlock(text))
}
