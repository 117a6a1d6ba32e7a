package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/posidlab/pdfcompare/internal/notifier"
	pkgconfig "github.com/posidlab/pdfcompare/pkg/config"
	"github.com/posidlab/pdfcompare/pkg/engine"
	"github.com/posidlab/pdfcompare/pkg/engine/report"
	"github.com/posidlab/pdfcompare/pkg/storage"
	"github.com/posidlab/pdfcompare/pkg/tui"
)

var compareCmd = &cobra.Command{
	Use:   "compare <left.pdf> <right.pdf>",
	Short: "Compare two documents interactively (TUI)",
	Long: `Compares two PDF documents word by word and block by block and opens
the interactive difference browser.

Use --headless to skip the TUI and just write the reports.

Example:
  pdfcompare compare old_proposal.pdf new_proposal.pdf
  pdfcompare compare --headless --strict old.pdf new.pdf`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config.LeftPath = args[0]
		config.RightPath = args[1]

		headless, _ := cmd.Flags().GetBool("headless")

		eng, err := engine.New(cmd.Context(), engine.WithConfig(config))
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}
		defer eng.Close(cmd.Context())

		if headless {
			res, err := eng.Run(cmd.Context())
			if err != nil && res == nil {
				fmt.Printf("Error running comparison: %v\n", err)
				os.Exit(1)
			}
			writeReports(eng, res)
			if err != nil {
				// Partial result in strict mode.
				fmt.Printf("Comparison incomplete: %v\n", err)
				os.Exit(1)
			}
			return
		}

		startTime := time.Now()
		p := tea.NewProgram(tui.NewModel(eng.Swarm, nil))

		go func() {
			res, runErr := eng.Run(cmd.Context())
			p.Send(tui.ResultMsg(res, runErr))
		}()

		// The final model is the only channel back from the program;
		// reading it after Run avoids racing the comparison goroutine.
		finalModel, err := p.Run()
		if err != nil {
			fmt.Printf("Alas, there's been an error: %v", err)
			os.Exit(1)
		}
		final := finalModel.(tui.Model)

		tui.PrintExitSummary(startTime, final.Result)
		if final.Result != nil {
			writeReports(eng, final.Result)
		}
		if runErr := final.Err(); runErr != nil {
			fmt.Printf("Comparison incomplete: %v\n", runErr)
			os.Exit(1)
		}
	},
}

func init() {
	compareCmd.Flags().Bool("headless", false, "Run without the TUI")
	rootCmd.AddCommand(compareCmd)
}

// writeReports renders all three report formats into the engine's
// output directory.
func writeReports(eng *engine.Engine, res *engine.Result) {
	outDir := eng.OutputDir()
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Printf("Error creating %s: %v\n", outDir, err)
		return
	}

	jsonPath := filepath.Join(outDir, "diff_report.json")
	csvPath := filepath.Join(outDir, "diff_report.csv")
	htmlPath := filepath.Join(outDir, "dashboard.html")

	if err := report.GenerateJSON(res, jsonPath); err != nil {
		fmt.Printf("Error writing JSON report: %v\n", err)
	}
	if err := report.GenerateCSV(res, csvPath); err != nil {
		fmt.Printf("Error writing CSV report: %v\n", err)
	}
	if err := report.GenerateDashboard(res, htmlPath); err != nil {
		fmt.Printf("Error writing dashboard: %v\n", err)
	}

	fmt.Println("Reports written:")
	fmt.Printf("  JSON: %s\n", jsonPath)
	fmt.Printf("  CSV:  %s\n", csvPath)
	fmt.Printf("  HTML: %s\n", htmlPath)

	archiveReports(jsonPath, csvPath, htmlPath)

	if slackWebhook != "" {
		client := notifier.NewSlackClient(slackWebhook, "")
		if err := client.SendComparisonReport(res); err != nil {
			fmt.Printf("Slack notification failed: %v\n", err)
		}
	}
}

// archiveReports keeps a timestamped copy of each report under the
// state directory. Best-effort: the next run overwrites the output
// directory, the archive is what survives.
func archiveReports(paths ...string) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	store := storage.NewLocalStore(filepath.Join(home, pkgconfig.DefaultStateDir, "reports"))
	stamp := time.Now().Format("2006-01-02T15-04-05")
	if _, err := storage.Archive(context.Background(), store, stamp, paths...); err != nil {
		fmt.Printf("Report archive incomplete: %v\n", err)
	}
}
