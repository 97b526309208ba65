// SPDX-License-Identifier: MIT

// Package title contains the pure text transformations applied to event
// names before they reach the guide and playlist writers.
package title

import (
	"regexp"
	"strings"

	unorm "golang.org/x/text/unicode/norm"
)

// Unknown is substituted for events that arrive without a title.
const Unknown = "Unknown Event"

// DefaultMaxLen is the display-name budget used by the guide builder.
const DefaultMaxLen = 38

var (
	// Decorative/emoji code points stripped from display names. U+2026
	// (the ellipsis we append ourselves) is carved out so shortening
	// stays idempotent.
	decorative = regexp.MustCompile(`[\x{2000}-\x{2025}\x{2027}-\x{206F}\x{2100}-\x{27FF}\x{FE00}-\x{FE0F}]+`)
	spaces     = regexp.MustCompile(`\s+`)

	// Trailing tags that must survive truncation.
	matSuffix  = regexp.MustCompile(`(?i)^(.*?)[\s\-–—]*\b(mat\s*\d+)\s*$`)
	langSuffix = regexp.MustCompile(`^(.*?)\s*(\([A-Za-z]{3}\))\s*$`)
)

// OrUnknown returns s trimmed, or the Unknown placeholder when empty.
func OrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown
	}
	return s
}

// clean strips decorative code points and collapses whitespace.
func clean(s string) string {
	s = unorm.NFC.String(s)
	s = decorative.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Shorten trims s to at most maxLen runes, cutting at a word boundary and
// appending an ellipsis when anything was dropped. Empty input becomes the
// Unknown placeholder. Shorten(Shorten(s)) == Shorten(s).
func Shorten(s string, maxLen int) string {
	s = clean(s)
	if s == "" {
		return Unknown
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	} else {
		cut = string(runes[:maxLen-1])
	}
	return strings.TrimRight(cut, " ") + "…"
}

// ShortenKeepSuffix behaves like Shorten but preserves a meaningful trailing
// tag ("Mat <n>" or a 3-letter parenthetical language code) intact, spending
// the truncation budget on the prefix only.
func ShortenKeepSuffix(s string, maxLen int) string {
	s = clean(s)
	if s == "" {
		return Unknown
	}
	if len([]rune(s)) <= maxLen {
		return s
	}

	for _, re := range []*regexp.Regexp{matSuffix, langSuffix} {
		m := re.FindStringSubmatch(s)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			continue
		}
		prefix, suffix := strings.TrimSpace(m[1]), m[2]
		budget := maxLen - len([]rune(suffix)) - 1
		if budget < 4 {
			break
		}
		return Shorten(prefix, budget) + " " + suffix
	}
	return Shorten(s, maxLen)
}
