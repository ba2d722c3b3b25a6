package newsparse

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	blankLinesRe   = regexp.MustCompile(`(?m)(?:^[\r\n]*|[\r\n]+)\s*[\r\n]+`)
	inlineScriptRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	edgeSpaceRe    = regexp.MustCompile(`^\p{Z}+|\p{Z}+$`)
	controlCharsRe = regexp.MustCompile(`[\x00-\x09\x0B\x0C\x0E-\x1F\x7F\x{2800}]`)
)

// Normalize cleans raw node text for emission as block content.
//
// It drops invalid UTF-8, composes characters (NFC), removes runs of blank
// lines, strips inline script fragments that leaked into text content,
// decodes HTML entities, trims Unicode separators from both ends and removes
// control characters along with the braille blank (U+2800) some sites use as
// a spacer. Entities are decoded before control characters are stripped so a
// numeric entity cannot reintroduce one. The steps repeat until the text
// stops changing, which fully decodes double-encoded input and makes
// Normalize idempotent.
func Normalize(raw string) string {
	s := raw
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = norm.NFC.String(s)
	s = blankLinesRe.ReplaceAllString(s, "")
	s = inlineScriptRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = edgeSpaceRe.ReplaceAllString(s, "")
	s = controlCharsRe.ReplaceAllString(s, "")
	return s
}

// HasActualText reports whether s contains anything besides invisible
// filler: whitespace, separators, no-break spaces, NUL and the braille blank.
func HasActualText(s string) bool {
	return strings.TrimFunc(s, isFiller) != ""
}

// HasActualTextIgnoringPunctuation is like HasActualText but also treats
// stray commas and periods as filler.
func HasActualTextIgnoringPunctuation(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == ',' || r == '.' || isFiller(r)
	}) != ""
}

func isFiller(r rune) bool {
	return r == '\u2800' || r == 0 || unicode.IsSpace(r) || unicode.In(r, unicode.Z)
}

// hasText reports whether a node's raw text is non-blank.
func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// CleanURL percent-encodes every byte outside the printable ASCII range
// 0x21-0x7E. Non-ASCII paths produced by Cyrillic CMS output become valid
// URLs while the structural characters (":", "/", "?", "&") stay literal.
func CleanURL(u string) string {
	var b strings.Builder
	for i := 0; i < len(u); i++ {
		c := u[i]
		if c < 0x21 || c > 0x7E {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ResolveURL resolves ref against base. Absolute references are returned
// unchanged; relative and protocol-relative references take their missing
// parts from base. Returns empty string if either URL cannot be parsed.
func ResolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if r.IsAbs() {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return b.ResolveReference(r).String()
}

// IsValidURL reports whether u is a well-formed absolute URL with a host.
func IsValidURL(u string) bool {
	if u == "" || strings.ContainsAny(u, " \t\r\n") {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
