// Package normalize reduces extracted words to a canonical comparison form
// so layout noise (bullets, URLs, page numbers, punctuation, Korean number
// units) does not register as document differences.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// bulletGlyphs lists the markers that carry no text meaning. The plain
// letter o appears here because the proposal templates use it as a bullet.
var bulletGlyphs = map[string]struct{}{
	"o": {}, "O": {},
	"•": {}, "●": {}, "○": {}, "◦": {}, "⦿": {}, "⦾": {},
	"■": {}, "□": {}, "▪": {}, "▫": {}, "◾": {}, "◽": {},
	"◆": {}, "◇": {}, "◈": {},
	"▶": {}, "▷": {}, "►": {}, "▸": {},
	"※": {}, "★": {}, "☆": {}, "✓": {}, "✔": {}, "✕": {}, "✖": {},
	"-": {}, "–": {}, "—": {}, "―": {},
	"→": {}, "←": {}, "↑": {}, "↓": {},
	"①": {}, "②": {}, "③": {}, "④": {}, "⑤": {},
	"⑥": {}, "⑦": {}, "⑧": {}, "⑨": {}, "⑩": {},
}

var urlMarkers = []string{"http", "https", "www.", ".com", ".net", ".org", ".go.kr", ".kr", "ftp://"}

// koreanUnits maps number-unit suffixes to their multipliers, largest
// first so 조 is expanded before 억 inside the same token.
var koreanUnits = []struct {
	unit       string
	multiplier int64
}{
	{"조", 1_000_000_000_000},
	{"억", 100_000_000},
	{"만", 10_000},
}

var (
	punctRe  = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	spaceRe  = regexp.MustCompile(`\s+`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
)

// unitRes holds one compiled `digits+unit` pattern per Korean unit.
var unitRes = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(koreanUnits))
	for _, u := range koreanUnits {
		m[u.unit] = regexp.MustCompile(`([0-9,]+)` + u.unit)
	}
	return m
}()

// IsMeaningless reports whether a word carries no comparable content:
// URLs, bullet glyphs, lone symbols, and short page-number digits.
func IsMeaningless(word string) bool {
	lower := strings.ToLower(word)
	for _, marker := range urlMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	trimmed := strings.TrimSpace(word)
	if _, ok := bulletGlyphs[trimmed]; ok {
		return true
	}

	runes := []rune(trimmed)
	if len(runes) == 1 {
		r := runes[0]
		if !isAlnum(r) && !IsKoreanRune(r) {
			return true
		}
	}

	// Bare one or two digit numbers are page numbers.
	if digitsRe.MatchString(trimmed) && len(trimmed) <= 2 {
		return true
	}

	return false
}

// IsKoreanRune reports whether r is a Hangul syllable or jamo.
func IsKoreanRune(r rune) bool {
	return (r >= '가' && r <= '힣') || (r >= 'ㄱ' && r <= 'ㅎ') || (r >= 'ㅏ' && r <= 'ㅣ')
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// ExpandKoreanNumber rewrites Korean number units into plain integers so
// "1,000만" and "10,000,000" compare equal. Tokens that fail to parse are
// left alone; trailing commas are always stripped.
func ExpandKoreanNumber(text string) string {
	for _, u := range koreanUnits {
		if !strings.Contains(text, u.unit) {
			continue
		}
		re := unitRes[u.unit]
		if m := re.FindStringSubmatch(text); m != nil {
			digits := strings.ReplaceAll(m[1], ",", "")
			if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
				text = strings.Replace(text, m[0], strconv.FormatInt(n*u.multiplier, 10), 1)
			}
		}
	}
	return strings.ReplaceAll(text, ",", "")
}

// SplitComma splits a raw word on commas, trimming each part and dropping
// empties. Extraction frequently glues "단어," and "다음" into one token.
func SplitComma(word string) []string {
	parts := strings.Split(word, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{word}
	}
	return out
}

// Word normalizes one word for comparison. An empty result means the word
// should be dropped entirely.
//
// Steps, in order: meaningless filter, Korean number expansion, punctuation
// strip, whitespace collapse, lowercase. The number expansion must run
// before the punctuation strip or the comma grouping is lost.
func Word(word string) string {
	if IsMeaningless(word) {
		return ""
	}
	word = ExpandKoreanNumber(word)
	word = punctRe.ReplaceAllString(word, "")
	word = spaceRe.ReplaceAllString(word, " ")
	word = strings.ToLower(word)
	return strings.TrimSpace(word)
}

// Text normalizes a whole text block for match scoring: whitespace
// collapse, punctuation strip, lowercase. Unlike Word it keeps short
// numbers since block titles legitimately contain them.
func Text(text string) string {
	text = spaceRe.ReplaceAllString(text, " ")
	text = punctRe.ReplaceAllString(text, "")
	return strings.ToLower(strings.TrimSpace(text))
}
