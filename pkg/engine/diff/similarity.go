package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the character-level similarity of two word lists as
// a percentage, computed over the space-joined normalized texts with
// difflib ratio semantics (2*matches / total length).
func Similarity(left, right []string) float64 {
	a := strings.Join(left, " ")
	b := strings.Join(right, " ")
	if a == "" && b == "" {
		return 100.0
	}
	m := difflib.NewMatcher(explode(a), explode(b))
	return m.Ratio() * 100.0
}

// Ratio returns the raw difflib ratio (0.0 - 1.0) of two strings at
// character granularity. Block matching scores candidates with this.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	m := difflib.NewMatcher(explode(a), explode(b))
	return m.Ratio()
}

// explode splits a string into per-rune elements so the line-oriented
// matcher scores at character granularity.
func explode(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
