package engine

import (
	"time"

	"github.com/posidlab/pdfcompare/pkg/engine/comparer"
	"github.com/posidlab/pdfcompare/pkg/engine/diff"
	"github.com/posidlab/pdfcompare/pkg/engine/rules"
)

// EditRecord is one word-level difference with its resolved words and
// any rule verdicts that matched it.
type EditRecord struct {
	Op       diff.Op         `json:"op"`
	Left     string          `json:"left,omitempty"`
	Right    string          `json:"right,omitempty"`
	Page     int             `json:"page"`
	Verdicts []rules.Verdict `json:"verdicts,omitempty"`
}

// PageResult holds the word-level comparison of one page pair.
type PageResult struct {
	Page       int          `json:"page"`
	Similarity float64      `json:"similarity"` // 0 - 100
	LeftWords  int          `json:"left_words"`
	RightWords int          `json:"right_words"`
	Edits      []EditRecord `json:"edits,omitempty"`
	Ignored    int          `json:"ignored,omitempty"` // edits suppressed by rules
	Error      string       `json:"error,omitempty"`
}

// Result is the full outcome of one comparison run.
type Result struct {
	LeftPath    string    `json:"left_path"`
	RightPath   string    `json:"right_path"`
	GeneratedAt time.Time `json:"generated_at"`

	Pages             int          `json:"pages"`
	PageResults       []PageResult `json:"page_results"`
	OverallSimilarity float64      `json:"overall_similarity"` // 0 - 100

	// Blocks is the section-level comparison.
	Blocks *comparer.Result `json:"blocks,omitempty"`

	Partial     bool  `json:"partial,omitempty"`
	FailedPages []int `json:"failed_pages,omitempty"`
}

// EditCount returns the number of surviving word-level edits.
func (r *Result) EditCount() int {
	n := 0
	for _, p := range r.PageResults {
		n += len(p.Edits)
	}
	return n
}

// BlockCounts returns the block-level counts, zero if block comparison
// did not run.
func (r *Result) BlockCounts() comparer.Counts {
	if r.Blocks == nil {
		return comparer.Counts{}
	}
	return r.Blocks.Counts()
}
