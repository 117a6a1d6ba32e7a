package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/posidlab/pdfcompare/pkg/build"
	pkgconfig "github.com/posidlab/pdfcompare/pkg/config"
)

var (
	buildVersion string
	buildBundler string
	buildDist    string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Package the desktop GUI into a standalone executable",
	Long: `Runs the bundler against the GUI entry point and reports the produced
artifact. Prompts for a version when --app-version is not given.

Example:
  pdfcompare build --app-version 2.3`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := pkgconfig.DefaultBuildConfig()
		if buildBundler != "" {
			cfg.Bundler = buildBundler
		}
		if buildDist != "" {
			cfg.DistDir = buildDist
		}

		rep, err := build.Run(cmd.Context(), build.Options{
			Version: buildVersion,
			Config:  cfg,
		})
		if err != nil {
			fmt.Printf("Build error: %v\n", err)
			os.Exit(1)
		}
		if !rep.Succeeded() {
			os.Exit(rep.ExitCode)
		}
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildVersion, "app-version", "", "Version stamp for the artifact name")
	buildCmd.Flags().StringVar(&buildBundler, "bundler", "", "Bundler binary (default pyinstaller)")
	buildCmd.Flags().StringVar(&buildDist, "dist", "", "Bundler output directory (default dist)")
	rootCmd.AddCommand(buildCmd)
}
