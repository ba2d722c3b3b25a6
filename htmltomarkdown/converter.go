// Package htmltomarkdown renders posts as Markdown using
// github.com/JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"fmt"
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/newsparse"
)

// Ensure Converter implements newsparse.Converter at compile time.
var _ newsparse.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", newsparse.Errorf(newsparse.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// ConvertPost renders a post as a Markdown document: the title as a heading,
// the summary, the lead image and then the content blocks.
func (c *Converter) ConvertPost(p *newsparse.Post) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(p.Title))
	if !p.PublishedAt.IsZero() {
		fmt.Fprintf(&b, "<p><em>%s</em> <a href=\"%s\">%s</a></p>\n",
			p.PublishedAt.Format("2006-01-02 15:04 MST"), html.EscapeString(p.Link), html.EscapeString(p.Link))
	} else {
		fmt.Fprintf(&b, "<p><a href=\"%s\">%s</a></p>\n", html.EscapeString(p.Link), html.EscapeString(p.Link))
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "<p><strong>%s</strong></p>\n", html.EscapeString(p.Description))
	}
	if p.Image != "" {
		b.WriteString(newsparse.RenderHTML([]newsparse.Block{newsparse.ImageBlock(p.Image, "")}))
	}
	b.WriteString(newsparse.RenderHTML(p.Items))
	return c.Convert(b.String())
}
