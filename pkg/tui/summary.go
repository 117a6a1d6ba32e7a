package tui

import (
	"fmt"
	"time"

	"github.com/posidlab/pdfcompare/pkg/engine"
)

// PrintExitSummary renders a one-screen wrap-up after the TUI closes.
func PrintExitSummary(start time.Time, res *engine.Result) {
	if res == nil {
		return
	}
	counts := res.BlockCounts()

	fmt.Println()
	fmt.Println(titleStyle.Render("COMPARISON SUMMARY"))
	fmt.Printf("  Similarity:   %s\n", hudValueStyle.Render(fmt.Sprintf("%.1f%%", res.OverallSimilarity)))
	fmt.Printf("  Pages:        %d\n", res.Pages)
	fmt.Printf("  Word edits:   %d\n", res.EditCount())
	fmt.Printf("  Blocks:       %s %d  %s %d  %s %d\n",
		iconModified.Render(), counts.Modified,
		iconDeleted.Render(), counts.Deleted,
		iconAdded.Render(), counts.Added,
	)
	if res.Partial {
		fmt.Printf("  %s pages %v failed to extract\n", danger.Render("[PARTIAL]"), res.FailedPages)
	}
	fmt.Printf("  Elapsed:      %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Println()
}
