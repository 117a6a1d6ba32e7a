package history

import "fmt"

// TrendResult contains drift signals derived from the run ledger.
type TrendResult struct {
	CurrentSimilarity float64
	SimilarityDelta   float64 // change since the previous run
	DiffDelta         int     // change in total differences

	Alerts []string
}

// Analyze compares the two most recent runs of a document pair and
// flags sudden drift.
func Analyze(runs []Snapshot) TrendResult {
	if len(runs) == 0 {
		return TrendResult{}
	}

	current := runs[len(runs)-1]
	res := TrendResult{CurrentSimilarity: current.Similarity}
	if len(runs) < 2 {
		return res
	}

	prev := runs[len(runs)-2]
	res.SimilarityDelta = current.Similarity - prev.Similarity
	res.DiffDelta = current.TotalDiffs() - prev.TotalDiffs()

	if res.SimilarityDelta < -10 {
		res.Alerts = append(res.Alerts,
			fmt.Sprintf("[WARNING] similarity dropped %.1f points since the last run", -res.SimilarityDelta))
	}
	if res.DiffDelta > 20 {
		res.Alerts = append(res.Alerts,
			fmt.Sprintf("[WARNING] %d new differences since the last run", res.DiffDelta))
	}
	if current.Partial {
		res.Alerts = append(res.Alerts, "[NOTICE] latest run had pages that failed to extract")
	}

	return res
}
