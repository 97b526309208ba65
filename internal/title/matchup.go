// SPDX-License-Identifier: MIT

package title

import (
	"regexp"
	"strings"
)

// CompactMatchup rules, applied in priority order:
//  1. "... Mat <n>"            -> <4-char code>M<n>
//  2. trailing "(XYZ)" tag     -> <=5-char matchup code + tag
//  3. "<left> vs|at <right>"   -> <codeL>-<codeR> or <codeL>@<codeR>
//  4. anything else            -> alphanumerics only, first 8
//
// The result is uppercase and never longer than 8 runes.

const (
	maxCodeLen   = 8
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	matPattern  = regexp.MustCompile(`(?i)^(.*?)[\s\-–—]*\bmat\s*(\d+)\s*$`)
	langPattern = regexp.MustCompile(`^(.*?)\s*\(([A-Za-z]{3})\)\s*$`)
	sepPattern  = regexp.MustCompile(`(?i)\s+(vs\.?|v\.?|at|@)\s+`)

	rankMarker    = regexp.MustCompile(`#\d+`)
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	nonAlnum      = regexp.MustCompile(`[^A-Za-z0-9]+`)
	allCapsToken  = regexp.MustCompile(`^[A-Z0-9]{2,4}$`)
)

// Generic institutional words dropped before deriving a side code.
var stopwords = map[string]struct{}{
	"university": {},
	"univ":       {},
	"college":    {},
	"coll":       {},
	"the":        {},
	"of":         {},
	"and":        {},
}

// CompactMatchup derives a <=8 character tuner-friendly code for an event
// title, typically "<team>-<team>" or "<team>@<team>".
func CompactMatchup(s string) string {
	s = clean(s)

	if m := matPattern.FindStringSubmatch(s); m != nil && strings.TrimSpace(m[1]) != "" {
		team := strings.ToUpper(nonAlnum.ReplaceAllString(m[1], ""))
		team = truncate(team, 4)
		return truncate(team+"M"+m[2], maxCodeLen)
	}

	if m := langPattern.FindStringSubmatch(s); m != nil && strings.TrimSpace(m[1]) != "" {
		inner := truncate(CompactMatchup(m[1]), maxCodeLen-3)
		return truncate(inner+strings.ToUpper(m[2]), maxCodeLen)
	}

	if code, ok := matchupCode(s); ok {
		return code
	}

	return truncate(strings.ToUpper(nonAlnum.ReplaceAllString(s, "")), maxCodeLen)
}

// matchupCode handles the "<left> <sep> <right>" form. The separator renders
// as "-" for the vs family and "@" for the at family.
func matchupCode(s string) (string, bool) {
	loc := sepPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", false
	}
	left, right := s[:loc[0]], s[loc[1]:]
	sep := "-"
	switch strings.ToLower(strings.TrimSuffix(s[loc[2]:loc[3]], ".")) {
	case "at", "@":
		sep = "@"
	}

	codeL, codeR := sideCode(left), sideCode(right)
	if codeL == "" || codeR == "" {
		return "", false
	}
	return truncate(codeL+sep+codeR, maxCodeLen), true
}

// sideCode abbreviates one side of a matchup: rank markers, parentheticals
// and stopwords are stripped, then an already-short all-caps token wins,
// then a <=3 word acronym, then the first four letters of the first word.
func sideCode(s string) string {
	s = rankMarker.ReplaceAllString(s, "")
	s = parenthetical.ReplaceAllString(s, "")

	var words []string
	for _, w := range strings.Fields(s) {
		w = nonAlnum.ReplaceAllString(w, "")
		if w == "" {
			continue
		}
		if _, skip := stopwords[strings.ToLower(w)]; skip {
			continue
		}
		if allCapsToken.MatchString(w) && strings.ContainsAny(w, upperLetters) {
			return w
		}
		words = append(words, w)
	}

	switch {
	case len(words) == 0:
		return ""
	case len(words) == 1:
		return truncate(strings.ToUpper(words[0]), 4)
	default:
		if len(words) > 3 {
			words = words[:3]
		}
		var b strings.Builder
		for _, w := range words {
			b.WriteString(strings.ToUpper(w[:1]))
		}
		return b.String()
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
