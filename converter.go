package newsparse

import (
	"fmt"
	"html"
	"strings"
)

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input is usually produced by RenderHTML.
	Convert(html string) (string, error)
}

// RenderHTML renders blocks as a simple HTML fragment, one element per
// block, suitable for a Converter. Video blocks hold YouTube IDs and render
// as watch page links.
func RenderHTML(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		switch block.Kind {
		case BlockText:
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(block.Text))
		case BlockHeader:
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", block.Level, html.EscapeString(block.Text), block.Level)
		case BlockImage:
			fmt.Fprintf(&b, "<p><img src=\"%s\" alt=\"%s\"></p>\n", html.EscapeString(block.MediaURL), html.EscapeString(block.Text))
		case BlockLink:
			label := block.Text
			if label == "" {
				label = block.LinkURL
			}
			fmt.Fprintf(&b, "<p><a href=\"%s\">%s</a></p>\n", html.EscapeString(block.LinkURL), html.EscapeString(label))
		case BlockQuote:
			fmt.Fprintf(&b, "<blockquote>%s</blockquote>\n", html.EscapeString(block.Text))
		case BlockVideo:
			u := YouTubeWatchURL(block.VideoID)
			fmt.Fprintf(&b, "<p><a href=\"%s\">%s</a></p>\n", html.EscapeString(u), html.EscapeString(u))
		}
	}
	return b.String()
}
