package newsparse

// BlockKind identifies the type of a content block.
type BlockKind int

// Content block kinds.
const (
	BlockText BlockKind = iota + 1
	BlockHeader
	BlockImage
	BlockLink
	BlockQuote
	BlockVideo
)

var blockKindNames = map[BlockKind]string{
	BlockText:   "text",
	BlockHeader: "header",
	BlockImage:  "image",
	BlockLink:   "link",
	BlockQuote:  "quote",
	BlockVideo:  "video",
}

// String returns the lowercase name of the kind.
func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind as its lowercase name.
func (k BlockKind) MarshalText() ([]byte, error) {
	name, ok := blockKindNames[k]
	if !ok {
		return nil, Errorf(EINVALID, "unknown block kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a lowercase kind name.
func (k *BlockKind) UnmarshalText(text []byte) error {
	for kind, name := range blockKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return Errorf(EINVALID, "unknown block kind %q", string(text))
}

// Block is one typed unit of article content.
// The payload that matters is selected by Kind: text for Text, Header and
// Quote blocks, MediaURL for images, LinkURL for links and VideoID for videos.
type Block struct {
	Kind     BlockKind `json:"kind"`
	Text     string    `json:"text,omitempty"`
	MediaURL string    `json:"mediaUrl,omitempty"`
	LinkURL  string    `json:"linkUrl,omitempty"`
	Level    int       `json:"level,omitempty"`
	VideoID  string    `json:"videoId,omitempty"`
}

// TextBlock returns a body text block.
func TextBlock(text string) Block {
	return Block{Kind: BlockText, Text: text}
}

// HeaderBlock returns a heading block of the given depth.
func HeaderBlock(text string, level int) Block {
	return Block{Kind: BlockHeader, Text: text, Level: level}
}

// ImageBlock returns an image block; alt may be empty.
func ImageBlock(mediaURL, alt string) Block {
	return Block{Kind: BlockImage, MediaURL: mediaURL, Text: alt}
}

// LinkBlock returns a link block; label may be empty.
func LinkBlock(linkURL, label string) Block {
	return Block{Kind: BlockLink, LinkURL: linkURL, Text: label}
}

// QuoteBlock returns a quotation block.
func QuoteBlock(text string) Block {
	return Block{Kind: BlockQuote, Text: text}
}

// VideoBlock returns a video block referencing a platform video ID.
func VideoBlock(videoID string) Block {
	return Block{Kind: BlockVideo, VideoID: videoID}
}

// Validate returns an error if the block lacks the payload its kind requires.
func (b *Block) Validate() error {
	switch b.Kind {
	case BlockText, BlockQuote:
		if b.Text == "" {
			return Errorf(EINVALID, "%s block text required", b.Kind)
		}
	case BlockHeader:
		if b.Text == "" {
			return Errorf(EINVALID, "header block text required")
		}
		if b.Level < 1 || b.Level > 6 {
			return Errorf(EINVALID, "header level must be between 1 and 6, got %d", b.Level)
		}
		return nil
	case BlockImage:
		if b.MediaURL == "" {
			return Errorf(EINVALID, "image block media URL required")
		}
	case BlockLink:
		if b.LinkURL == "" {
			return Errorf(EINVALID, "link block URL required")
		}
	case BlockVideo:
		if b.VideoID == "" {
			return Errorf(EINVALID, "video block ID required")
		}
	default:
		return Errorf(EINVALID, "unknown block kind %d", int(b.Kind))
	}
	if b.Level != 0 {
		return Errorf(EINVALID, "level is only allowed on header blocks")
	}
	return nil
}
