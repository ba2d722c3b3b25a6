package newsparse_test

import (
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// element is a minimal in-memory node used to exercise the generic code
// paths that do not rely on a TagContainer fast path.
type element struct {
	tag      string
	text     string
	attrs    map[string]string
	children []newsparse.Node
}

func (e *element) Tag() string  { return e.tag }
func (e *element) IsText() bool { return e.tag == "" && e.children == nil }
func (e *element) Text() string {
	if e.IsText() {
		return e.text
	}
	var s string
	for _, c := range e.children {
		s += c.Text()
	}
	return s
}
func (e *element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}
func (e *element) Children() []newsparse.Node { return e.children }

func text(s string) *element { return &element{text: s} }

func el(tag string, children ...newsparse.Node) *element {
	if children == nil {
		children = []newsparse.Node{}
	}
	return &element{tag: tag, children: children}
}

func parse(t *testing.T, fragment string) newsparse.Node {
	t.Helper()
	n, err := goquery.ParseFragment(fragment)
	require.NoError(t, err)
	return n
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := newsparse.NewClassifier([]string{"blockquote", "em"}, []string{"figcaption"}, []string{"header"})

	tests := []struct {
		name     string
		fragment string
		want     newsparse.NodeKind
	}{
		{"figcaption passes through", `<figcaption>Caption</figcaption>`, newsparse.KindPassThrough},
		{"configured skip tag", `<header>Menu</header>`, newsparse.KindSkip},
		{"heading", `<h3>Title</h3>`, newsparse.KindHeading},
		{"blockquote", `<blockquote>Quote</blockquote>`, newsparse.KindQuote},
		{"configured em quote", `<em>Quote</em>`, newsparse.KindQuote},
		{"image", `<img src="/a.jpg">`, newsparse.KindImage},
		{"iframe", `<iframe src="https://youtu.be/dQw4w9WgXcQ"></iframe>`, newsparse.KindVideo},
		{"video", `<video src="/clip.mp4"></video>`, newsparse.KindVideo},
		{"link", `<a href="/x">Link</a>`, newsparse.KindLink},
		{"paragraph", `<p>Body</p>`, newsparse.KindContainer},
		{"span", `<span>Body</span>`, newsparse.KindContainer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, c.Classify(parse(t, tt.fragment)))
		})
	}

	t.Run("text leaf", func(t *testing.T) {
		t.Parallel()

		p := parse(t, `<p>Body</p>`)

		assert.Equal(t, newsparse.KindText, c.Classify(p.Children()[0]))
	})

	t.Run("comment is ignored", func(t *testing.T) {
		t.Parallel()

		p := parse(t, `<p><!-- note --></p>`)

		assert.Equal(t, newsparse.KindIgnore, c.Classify(p.Children()[0]))
	})

	t.Run("nil node is ignored", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, newsparse.KindIgnore, c.Classify(nil))
	})

	t.Run("em is a container unless configured as quote", func(t *testing.T) {
		t.Parallel()

		plain := newsparse.NewClassifier([]string{"blockquote"}, nil, nil)

		assert.Equal(t, newsparse.KindContainer, plain.Classify(parse(t, `<em>Quote</em>`)))
	})
}

func TestHeadingLevel(t *testing.T) {
	t.Parallel()

	for level, tag := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		assert.Equal(t, level+1, newsparse.HeadingLevel(el(tag)), tag)
	}
	assert.Zero(t, newsparse.HeadingLevel(el("h7")))
	assert.Zero(t, newsparse.HeadingLevel(el("header")))
	assert.Zero(t, newsparse.HeadingLevel(el("p")))
	assert.Zero(t, newsparse.HeadingLevel(text("h1")))
}

func TestContainsAny(t *testing.T) {
	t.Parallel()

	t.Run("finds deep descendants", func(t *testing.T) {
		t.Parallel()

		n := parse(t, `<div><p><span><a href="/x">deep</a></span></p></div>`)

		assert.True(t, newsparse.ContainsAny(n, []string{"img", "a"}))
	})

	t.Run("ignores the node itself", func(t *testing.T) {
		t.Parallel()

		n := parse(t, `<a href="/x">self</a>`)

		assert.False(t, newsparse.ContainsAny(n, []string{"a"}))
	})

	t.Run("returns false for empty tag set", func(t *testing.T) {
		t.Parallel()

		n := parse(t, `<div><img src="/a.jpg"></div>`)

		assert.False(t, newsparse.ContainsAny(n, nil))
	})

	t.Run("walks nodes without a fast path", func(t *testing.T) {
		t.Parallel()

		n := el("div", el("p", text("a"), el("img")))

		assert.True(t, newsparse.ContainsAny(n, []string{"img"}))
		assert.False(t, newsparse.ContainsAny(n, []string{"iframe"}))
	})
}
