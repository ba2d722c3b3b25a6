package scrape

import (
	"fmt"

	"github.com/fwojciec/newsparse"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// No room for the ellipsis.
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// Summarize describes a scrape result in one line.
func Summarize(r *Result) string {
	var text, media int
	for _, post := range r.Posts {
		for _, b := range post.Items {
			switch b.Kind {
			case newsparse.BlockText, newsparse.BlockHeader, newsparse.BlockQuote:
				text++
			default:
				media++
			}
		}
	}
	return fmt.Sprintf("%d posts (%d text blocks, %d media blocks), %d failed, %d skipped",
		len(r.Posts), text, media, r.Failed, r.Skipped)
}
