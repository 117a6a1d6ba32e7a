package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgconfig "github.com/posidlab/pdfcompare/pkg/config"
	"github.com/posidlab/pdfcompare/pkg/launch"
)

var (
	launchInterpreter string
	launchEntry       string
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Install missing GUI dependencies and start the application",
	Long: `Probes for the GUI's interpreter packages, installs the missing ones,
then starts the application in the foreground.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := pkgconfig.DefaultLaunchConfig()
		if launchInterpreter != "" {
			cfg.Interpreter = launchInterpreter
		}
		if launchEntry != "" {
			cfg.Entry = launchEntry
		}

		rep, err := launch.Run(cmd.Context(), launch.Options{Config: cfg})
		if err != nil {
			fmt.Printf("Launch error: %v\n", err)
			os.Exit(1)
		}
		if rep.ExitCode != 0 {
			os.Exit(rep.ExitCode)
		}
	},
}

func init() {
	launchCmd.Flags().StringVar(&launchInterpreter, "interpreter", "", "Interpreter binary (default python3)")
	launchCmd.Flags().StringVar(&launchEntry, "entry", "", "GUI entry script")
	rootCmd.AddCommand(launchCmd)
}
