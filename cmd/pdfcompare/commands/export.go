package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/posidlab/pdfcompare/pkg/engine"
)

var exportCmd = &cobra.Command{
	Use:   "export <left.pdf> <right.pdf>",
	Short: "Compare and export results (CSV, JSON, HTML)",
	Long: `Run a comparison and write the results without opening the TUI.

Default output directory: ./pdfcompare-out/`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config.LeftPath = args[0]
		config.RightPath = args[1]

		eng, err := engine.New(cmd.Context(), engine.WithConfig(config))
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}
		defer eng.Close(cmd.Context())

		res, runErr := eng.Run(cmd.Context())
		if runErr != nil && res == nil {
			fmt.Printf("Error running comparison: %v\n", runErr)
			os.Exit(1)
		}

		writeReports(eng, res)
		fmt.Printf("\nSimilarity: %.1f%% over %d pages, %d word edits.\n",
			res.OverallSimilarity, res.Pages, res.EditCount())

		if runErr != nil {
			fmt.Printf("Comparison incomplete: %v\n", runErr)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
