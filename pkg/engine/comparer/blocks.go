// Package comparer matches text blocks between two documents and
// classifies every block as same, modified, added, or deleted. Matching
// works on normalized text so layout noise never produces a false diff.
package comparer

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/posidlab/pdfcompare/pkg/config"
	"github.com/posidlab/pdfcompare/pkg/engine/diff"
	"github.com/posidlab/pdfcompare/pkg/engine/normalize"
	"github.com/posidlab/pdfcompare/pkg/engine/parser"
	"github.com/posidlab/pdfcompare/pkg/pdf"
	"github.com/posidlab/pdfcompare/pkg/sys/intern"
)

// Highlight colors for annotated output.
const (
	ColorModified = "yellow"
	ColorDeleted  = "red"
	ColorAdded    = "green"
)

// WordDiff holds the word-level delta of one matched block pair.
type WordDiff struct {
	Added   []string `json:"added,omitempty"`
	Deleted []string `json:"deleted,omitempty"`
}

// Same reports whether the pair had no word-level changes.
func (w WordDiff) Same() bool {
	return len(w.Added) == 0 && len(w.Deleted) == 0
}

// Match is a pair of blocks that map to the same section.
type Match struct {
	LeftIndex  int              `json:"left_index"`
	RightIndex int              `json:"right_index"`
	Left       parser.TextBlock `json:"left"`
	Right      parser.TextBlock `json:"right"`
	Score      float64          `json:"score"`
	WordDiff   WordDiff         `json:"word_diff"`
}

// Unmatched is a block with no counterpart on the other side.
type Unmatched struct {
	Index int              `json:"index"`
	Block parser.TextBlock `json:"block"`
}

// Highlight is one annotation rectangle for the rendered overlay.
type Highlight struct {
	BBox   pdf.BBox `json:"bbox"`
	Page   int      `json:"page"`
	Color  string   `json:"color"`
	Detail string   `json:"detail"`
}

// Result is the full outcome of a block comparison.
type Result struct {
	Modified    []Match     `json:"modified"`
	Placeholder []Match     `json:"placeholder,omitempty"`
	Deleted     []Unmatched `json:"deleted"`
	Added       []Unmatched `json:"added"`

	// SyncMap maps left block indices to their matched right indices.
	SyncMap map[int]int `json:"sync_map"`

	// Highlights keyed by page, one map per side.
	HighlightsLeft  map[int][]Highlight `json:"highlights_left"`
	HighlightsRight map[int][]Highlight `json:"highlights_right"`
}

// Counts aggregates the result for summaries and reports.
type Counts struct {
	Modified int `json:"modified"`
	Deleted  int `json:"deleted"`
	Added    int `json:"added"`
	Total    int `json:"total"`
}

// Counts returns the aggregated diff counts. Placeholder pairs are not
// differences and stay out of the total.
func (r *Result) Counts() Counts {
	c := Counts{
		Modified: len(r.Modified),
		Deleted:  len(r.Deleted),
		Added:    len(r.Added),
	}
	c.Total = c.Modified + c.Deleted + c.Added
	return c
}

// Comparer matches and diffs block lists.
type Comparer struct {
	cfg  config.MatchConfig
	dict *normalize.Dictionary
	keys *intern.Pool

	// SkipPlaceholders suppresses pairs where the left side is a
	// template placeholder filled in on the right.
	SkipPlaceholders bool
}

// New returns a Comparer with the given matching parameters.
func New(cfg config.MatchConfig) *Comparer {
	return &Comparer{cfg: cfg, keys: intern.NewPool()}
}

// WithDictionary applies a user dictionary to the matching keys.
func (c *Comparer) WithDictionary(d *normalize.Dictionary) *Comparer {
	c.dict = d
	return c
}

// matchKey normalizes block text and interns it. Matching compares
// handles first, so two blocks with the same normalized text never pay
// for a ratio computation.
func (c *Comparer) matchKey(text string) (string, uint32) {
	key := normalize.Text(text)
	if c.dict != nil {
		key = c.dict.Apply(key)
	}
	return key, c.keys.ID(key)
}

// findBestMatch returns the index and score of the right block most
// similar to target. ok is false when nothing clears the threshold.
func (c *Comparer) findBestMatch(target parser.TextBlock, candidates []parser.TextBlock) (index int, score float64, ok bool) {
	targetKey, targetID := c.matchKey(target.Text)
	if targetKey == "" {
		return 0, 0, false
	}

	best := -1.0
	bestIdx := -1
	for i, cand := range candidates {
		key, id := c.matchKey(cand.Text)
		if key == "" {
			continue
		}

		var s float64
		if id == targetID {
			s = 1.0
		} else {
			s = diff.Ratio(targetKey, key)
		}
		if cand.SectionType == target.SectionType {
			s += c.cfg.SectionTypeBonus
		}
		if s > best {
			best = s
			bestIdx = i
		}
	}

	if best >= c.cfg.SimilarityThreshold {
		return bestIdx, best, true
	}
	return 0, 0, false
}

// tokenize splits text into whitespace-delimited words.
func tokenize(text string) []string {
	return strings.Fields(text)
}

// compareWordLevel diffs two texts word by word.
func compareWordLevel(textA, textB string) WordDiff {
	wordsA := tokenize(textA)
	wordsB := tokenize(textB)
	if equalWords(wordsA, wordsB) {
		return WordDiff{}
	}

	// Map each word to a rune so the diff runs at word granularity.
	dmp := diffmatchpatch.New()
	joinedA := strings.Join(wordsA, "\n") + "\n"
	joinedB := strings.Join(wordsB, "\n") + "\n"
	chA, chB, lines := dmp.DiffLinesToChars(joinedA, joinedB)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chA, chB, false), lines)

	var wd WordDiff
	for _, d := range diffs {
		words := strings.Fields(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			wd.Added = append(wd.Added, words...)
		case diffmatchpatch.DiffDelete:
			wd.Deleted = append(wd.Deleted, words...)
		}
	}
	return wd
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Compare matches every left block against the right list and builds
// highlight overlays for both sides. A right block is consumed by at
// most one match.
func (c *Comparer) Compare(left, right []parser.TextBlock) *Result {
	res := &Result{
		SyncMap:         make(map[int]int),
		HighlightsLeft:  make(map[int][]Highlight),
		HighlightsRight: make(map[int][]Highlight),
	}

	matchedRight := make(map[int]bool)

	for i, blockA := range left {
		j, score, ok := c.findBestMatch(blockA, right)
		if ok {
			// The best candidate may already belong to an earlier
			// match. Such a block maps to nothing on either side.
			if matchedRight[j] {
				continue
			}
			matchedRight[j] = true
			res.SyncMap[i] = j

			blockB := right[j]
			wd := compareWordLevel(blockA.Text, blockB.Text)
			if wd.Same() {
				continue
			}

			m := Match{
				LeftIndex:  i,
				RightIndex: j,
				Left:       blockA,
				Right:      blockB,
				Score:      score,
				WordDiff:   wd,
			}

			if c.SkipPlaceholders && IsPlaceholderDiff(blockA.Text, blockB.Text) {
				res.Placeholder = append(res.Placeholder, m)
				continue
			}

			res.Modified = append(res.Modified, m)
			res.HighlightsLeft[blockA.Page] = append(res.HighlightsLeft[blockA.Page], Highlight{
				BBox:   blockA.BBox,
				Page:   blockA.Page,
				Color:  ColorModified,
				Detail: formatDetail(wd, true),
			})
			res.HighlightsRight[blockB.Page] = append(res.HighlightsRight[blockB.Page], Highlight{
				BBox:   blockB.BBox,
				Page:   blockB.Page,
				Color:  ColorModified,
				Detail: formatDetail(wd, false),
			})
			continue
		}

		res.Deleted = append(res.Deleted, Unmatched{Index: i, Block: blockA})
		res.HighlightsLeft[blockA.Page] = append(res.HighlightsLeft[blockA.Page], Highlight{
			BBox:   blockA.BBox,
			Page:   blockA.Page,
			Color:  ColorDeleted,
			Detail: "[삭제됨] " + blockA.Text,
		})
	}

	for j, blockB := range right {
		if matchedRight[j] {
			continue
		}
		res.Added = append(res.Added, Unmatched{Index: j, Block: blockB})
		res.HighlightsRight[blockB.Page] = append(res.HighlightsRight[blockB.Page], Highlight{
			BBox:   blockB.BBox,
			Page:   blockB.Page,
			Color:  ColorAdded,
			Detail: "[추가됨] " + blockB.Text,
		})
	}

	return res
}

// formatDetail renders the annotation text of a modified pair. The left
// side lists removed words, the right side lists inserted ones.
func formatDetail(wd WordDiff, leftSide bool) string {
	if leftSide {
		if len(wd.Deleted) > 0 {
			return "[변경/삭제] " + strings.Join(wd.Deleted, " ")
		}
		return "[변경됨]"
	}
	if len(wd.Added) > 0 {
		return "[변경/추가] " + strings.Join(wd.Added, " ")
	}
	return "[변경됨]"
}
