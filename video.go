package newsparse

import (
	"html"
	"regexp"
	"strings"
)

// VideoHost identifies URLs of a video hosting platform.
type VideoHost struct {
	// Name is a short label such as "youtube".
	Name string

	// Pattern matches URLs served by the host.
	Pattern *regexp.Regexp

	// IDGroup is the submatch index holding the video ID. Video blocks are
	// rendered as YouTube videos, so only YouTube hosts set it. Zero marks a
	// link-only host: matches become Link blocks instead of Video blocks.
	IDGroup int
}

// Match reports whether u belongs to the host and returns the video ID
// when the host exposes one.
func (h VideoHost) Match(u string) (id string, ok bool) {
	if h.Pattern == nil {
		return "", false
	}
	m := h.Pattern.FindStringSubmatch(u)
	if m == nil {
		return "", false
	}
	if h.IDGroup > 0 && h.IDGroup < len(m) {
		return m[h.IDGroup], true
	}
	return "", true
}

// YouTube matches youtu.be, watch?v=, /embed/ and /v/ URLs and captures the
// 11-character video ID.
var YouTube = VideoHost{
	Name:    "youtube",
	Pattern: regexp.MustCompile(`(?i)(youtu\.be/|youtube\.com/(watch\?(.*&)?v=|(embed|v)/))([\w-]{11})`),
	IDGroup: 5,
}

// VK matches embedded VK video players. VK has no portable video ID, so
// matches are kept as links.
var VK = VideoHost{
	Name:    "vk",
	Pattern: regexp.MustCompile(`vk\.com`),
}

// DefaultVideoHosts returns the hosts recognized out of the box.
func DefaultVideoHosts() []VideoHost {
	return []VideoHost{YouTube, VK}
}

// YouTubeID returns the YouTube video ID referenced by u, or empty string.
func YouTubeID(u string) string {
	id, _ := YouTube.Match(u)
	return id
}

// YouTubeWatchURL returns the watch page URL of a YouTube video ID.
func YouTubeWatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// embedURL prepares a link-only embed source for validation: entities left
// in the attribute are decoded and protocol-relative URLs get https.
func embedURL(src string) string {
	src = html.UnescapeString(src)
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}
