// Package normalize coerces raw extracted line records into the canonical
// form the detection engine evaluates.
package normalize

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// Code trims whitespace, uppercases, and strips non-alphanumeric characters
// from a billing code. Returns "" when nothing usable remains.
func Code(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return nonAlphanumeric.ReplaceAllString(strings.ToUpper(s), "")
}

// Modifiers normalizes a modifier set: each entry is trimmed and uppercased,
// empties are dropped, duplicates removed. Order of first appearance is kept
// so normalized lines stay deterministic. A nil input yields nil.
func Modifiers(mods []string) []string {
	if len(mods) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(mods))
	var out []string
	for _, m := range mods {
		m = Code(m)
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

var multiSpace = regexp.MustCompile(`\s+`)

// Description collapses whitespace and trims a line description.
func Description(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}
