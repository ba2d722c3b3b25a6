package htmltomarkdown_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements newsparse.Converter at compile time.
var _ newsparse.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Мэр открыл мост.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Мэр открыл мост.")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Title</h1><h2>Subtitle</h2><h3>Section</h3>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
		assert.Contains(t, md, "### Section")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Visit <a href="https://example.com">Example</a> for more info.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p><strong>Bold</strong> and <em>italic</em> text.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**Bold**")
		assert.Contains(t, md, "*italic*")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<blockquote>This is a quote.</blockquote>`)

		require.NoError(t, err)
		assert.Contains(t, md, "> This is a quote.")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})
}

func TestConverter_ConvertPost(t *testing.T) {
	t.Parallel()

	t.Run("renders a full post", func(t *testing.T) {
		t.Parallel()

		post := &newsparse.Post{
			Title:       "Мост открыт",
			Description: "Мэр открыл мост",
			Link:        "https://news.example.com/1",
			Image:       "https://news.example.com/lead.jpg",
			PublishedAt: time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC),
			Items: []newsparse.Block{
				newsparse.HeaderBlock("Подробности", 2),
				newsparse.TextBlock("Движение начнется завтра."),
				newsparse.ImageBlock("https://news.example.com/bridge.jpg", "Мост"),
				newsparse.LinkBlock("https://city.example.com/", "Мэрия"),
				newsparse.QuoteBlock("Это важный день"),
				newsparse.VideoBlock("dQw4w9WgXcQ"),
			},
		}

		md, err := htmltomarkdown.NewConverter().ConvertPost(post)

		require.NoError(t, err)
		assert.Contains(t, md, "# Мост открыт")
		assert.Contains(t, md, "2024-05-01 07:30 UTC")
		assert.Contains(t, md, "**Мэр открыл мост**")
		assert.Contains(t, md, "![](https://news.example.com/lead.jpg)")
		assert.Contains(t, md, "## Подробности")
		assert.Contains(t, md, "Движение начнется завтра.")
		assert.Contains(t, md, "![Мост](https://news.example.com/bridge.jpg)")
		assert.Contains(t, md, "[Мэрия](https://city.example.com/)")
		assert.Contains(t, md, "> Это важный день")
		assert.Contains(t, md, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	})

	t.Run("omits empty summary and image", func(t *testing.T) {
		t.Parallel()

		post := &newsparse.Post{Title: "Title", Link: "https://news.example.com/1"}

		md, err := htmltomarkdown.NewConverter().ConvertPost(post)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.NotContains(t, md, "**")
		assert.NotContains(t, md, "![")
	})
}
