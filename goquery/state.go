package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
)

// State holds the media items of an article read from JSON state embedded
// in a page script. Items are consumed in document order. A State belongs to
// one article and is not safe for concurrent use.
type State struct {
	images []string
	embeds []string
}

// ParseState finds the script containing src.Marker, decodes the JSON value
// assigned after it and collects the image and iframe items found at
// src.Path. Returns ENOTFOUND if no script carries the marker.
func ParseState(page string, src newsparse.StateSource) (*State, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "failed to parse HTML: %v", err)
	}

	var script string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), src.Marker) {
			script = s.Text()
			return false
		}
		return true
	})
	if script == "" {
		return nil, newsparse.Errorf(newsparse.ENOTFOUND, "script state %q not found", src.Marker)
	}

	// The value follows the first "=" after the marker; trailing code is
	// left to the decoder.
	rest := script[strings.Index(script, src.Marker)+len(src.Marker):]
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return nil, newsparse.Errorf(newsparse.EINVALID, "script state %q has no assignment", src.Marker)
	}
	var value any
	if err := json.NewDecoder(strings.NewReader(rest[eq+1:])).Decode(&value); err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "failed to decode script state: %v", err)
	}

	list, ok := lookup(value, src.Path).([]any)
	if !ok {
		return nil, newsparse.Errorf(newsparse.ENOTFOUND, "script state path %q not found", src.Path)
	}

	var items []map[string]any
	for _, v := range list {
		item, ok := v.(map[string]any)
		if !ok {
			continue
		}
		switch item["type"] {
		case "images", "iframe":
			items = append(items, item)
		}
	}
	if src.SkipLead && len(items) > 0 {
		items = items[1:]
	}

	s := &State{}
	for _, item := range items {
		switch item["type"] {
		case "images":
			u, _ := lookup(item, "value.url").(string)
			if src.ImagePlaceholder != "" {
				u = strings.ReplaceAll(u, src.ImagePlaceholder, src.ImageReplacement)
			}
			s.images = append(s.images, u)
		case "iframe":
			if u, _ := lookup(item, "media.src").(string); u != "" {
				s.embeds = append(s.embeds, u)
			}
		}
	}
	return s, nil
}

// NextImage returns the next unused image URL, or empty string when none is
// left. Its signature matches the extraction image fallback.
func (s *State) NextImage() string {
	if s == nil || len(s.images) == 0 {
		return ""
	}
	u := s.images[0]
	s.images = s.images[1:]
	return u
}

// Embeds returns the iframe sources of the state.
func (s *State) Embeds() []string {
	if s == nil {
		return nil
	}
	return s.embeds
}

// lookup follows a dotted path of object keys.
func lookup(v any, path string) any {
	if path == "" {
		return v
	}
	for _, key := range strings.Split(path, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[key]
	}
	return v
}
