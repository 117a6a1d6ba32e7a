package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/posidlab/pdfcompare/pkg/engine/history"
)

var historyWindow int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent comparison runs and drift alerts",
	Run: func(cmd *cobra.Command, args []string) {
		path := config.HistoryPath
		if path == "" {
			var err error
			path, err = history.GetLedgerPath()
			if err != nil {
				fmt.Printf("Error locating ledger: %v\n", err)
				os.Exit(1)
			}
		}

		client := history.NewClient(history.NewLocalBackend(path))
		runs, err := client.LoadWindow(historyWindow)
		if err != nil {
			fmt.Printf("Error reading ledger: %v\n", err)
			os.Exit(1)
		}
		if len(runs) == 0 {
			fmt.Println("No recorded runs yet.")
			return
		}

		fmt.Printf("%-20s  %-10s  %-6s  %-6s  %-6s  %s\n",
			"WHEN", "SIMILARITY", "MOD", "DEL", "ADD", "FILES")
		for _, r := range runs {
			fmt.Printf("%-20s  %9.1f%%  %-6d  %-6d  %-6d  %s -> %s\n",
				time.Unix(r.Timestamp, 0).Format("2006-01-02 15:04:05"),
				r.Similarity,
				r.Modified, r.Deleted, r.Added,
				r.LeftPath, r.RightPath,
			)
		}

		trend := history.Analyze(runs)
		if len(trend.Alerts) > 0 {
			fmt.Println("\nAlerts:")
			for _, a := range trend.Alerts {
				fmt.Printf("  ! %s\n", a)
			}
		}
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyWindow, "window", 10, "Number of recent runs to show")
	rootCmd.AddCommand(historyCmd)
}
