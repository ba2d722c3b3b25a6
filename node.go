package newsparse

// Node is a read-only view of one DOM node.
// The extraction engine reads nodes and never mutates them; removing
// unwanted nodes is done by the Locator before extraction.
type Node interface {
	// Tag returns the lowercase element name, or empty string for
	// non-element nodes.
	Tag() string

	// IsText reports whether the node is a text leaf.
	IsText() bool

	// Text returns the concatenated text content of the node's subtree.
	Text() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Children returns the direct child nodes in document order.
	Children() []Node
}

// TagContainer is implemented by nodes that can answer descendant tag
// queries without materializing their subtree.
type TagContainer interface {
	ContainsTag(tags ...string) bool
}

// NodeKind is the semantic class of a node as seen by the walker.
type NodeKind int

// Node kinds in walker precedence order.
const (
	KindIgnore NodeKind = iota
	KindPassThrough
	KindSkip
	KindHeading
	KindQuote
	KindImage
	KindVideo
	KindLink
	KindText
	KindContainer
)

var nodeKindNames = [...]string{
	KindIgnore:      "ignore",
	KindPassThrough: "pass-through",
	KindSkip:        "skip",
	KindHeading:     "heading",
	KindQuote:       "quote",
	KindImage:       "image",
	KindVideo:       "video",
	KindLink:        "link",
	KindText:        "text",
	KindContainer:   "container",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// Classifier maps nodes to their NodeKind from tag names alone.
type Classifier struct {
	quote       map[string]bool
	passThrough map[string]bool
	skip        map[string]bool
}

// NewClassifier returns a Classifier treating quoteTags as quotations,
// passThroughTags as transparent wrappers and skipTags as dropped subtrees.
func NewClassifier(quoteTags, passThroughTags, skipTags []string) *Classifier {
	return &Classifier{
		quote:       tagSet(quoteTags),
		passThrough: tagSet(passThroughTags),
		skip:        tagSet(skipTags),
	}
}

// Classify returns the kind of n. The order of the checks is the walker's
// precedence: a figcaption is always traversed, a heading is never a
// container, and so on down to the generic container.
func (c *Classifier) Classify(n Node) NodeKind {
	if n == nil {
		return KindIgnore
	}
	if n.IsText() {
		return KindText
	}
	tag := n.Tag()
	switch {
	case tag == "":
		return KindIgnore
	case c.passThrough[tag]:
		return KindPassThrough
	case c.skip[tag]:
		return KindSkip
	case HeadingLevel(n) > 0:
		return KindHeading
	case c.quote[tag]:
		return KindQuote
	case tag == "img":
		return KindImage
	case tag == "iframe" || tag == "video":
		return KindVideo
	case tag == "a":
		return KindLink
	}
	return KindContainer
}

// HeadingLevel maps h1..h6 to 1..6 and returns 0 for anything else.
func HeadingLevel(n Node) int {
	tag := n.Tag()
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// ContainsAny reports whether any descendant of n, not n itself, has one of
// the given tags.
func ContainsAny(n Node, tags []string) bool {
	if len(tags) == 0 {
		return false
	}
	if tc, ok := n.(TagContainer); ok {
		return tc.ContainsTag(tags...)
	}
	return containsTag(n, tagSet(tags))
}

func containsTag(n Node, set map[string]bool) bool {
	for _, child := range n.Children() {
		if set[child.Tag()] || containsTag(child, set) {
			return true
		}
	}
	return false
}

func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}
