package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/posidlab/pdfcompare/pkg/engine"
	"github.com/posidlab/pdfcompare/pkg/version"
)

var (
	cfgFile      string
	config       engine.Config
	slackWebhook string
)

var rootCmd = &cobra.Command{
	Use:   "pdfcompare",
	Short: "Insurance document comparison",
	Long: `pdfcompare - Text comparison for insurance PDFs

Compare. Review. Report.`,
	Version: version.Current,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent Flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.pdfcompare.yaml)")
	rootCmd.PersistentFlags().StringVar(&config.RulesPath, "rules", "", "HCL rules file or directory")
	rootCmd.PersistentFlags().StringVar(&config.DictionaryPath, "dict", "", "User dictionary (YAML)")
	rootCmd.PersistentFlags().StringVar(&config.OutputDir, "out", "", "Report output directory")
	rootCmd.PersistentFlags().StringVar(&config.HistoryPath, "ledger", "", "Run ledger file (default ~/.pdfcompare/ledger.jsonl)")
	rootCmd.PersistentFlags().IntVar(&config.MaxConcurrency, "concurrency", 0, "Worker count (default: CPU count)")
	rootCmd.PersistentFlags().BoolVar(&config.StrictMode, "strict", false, "Fail when any page cannot be extracted")
	rootCmd.PersistentFlags().BoolVar(&config.SkipPlaceholders, "skip-placeholders", true, "Suppress template placeholder differences")
	rootCmd.PersistentFlags().BoolVar(&config.JsonLogs, "json-logs", false, "Structured JSON logs on stderr")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&slackWebhook, "slack-webhook", "", "Slack Webhook URL for summaries")

	// Hidden Flags
	rootCmd.PersistentFlags().StringVar(&config.OtelEndpoint, "otel-endpoint", "", "OTLP trace endpoint")
	rootCmd.PersistentFlags().MarkHidden("otel-endpoint")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if cmd.Name() == "compare" || cmd.Name() == "update" {
			checkUpdate()
		}
	}
}

func checkUpdate() {
	latest, err := fetchLatestVersion()
	if err == nil && strings.TrimSpace(latest) > version.Current {
		fmt.Printf("\n[UPDATE] Available: %s -> %s\nRun 'pdfcompare update' for instructions.\n\n", version.Current, latest)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigFile(filepath.Join(home, ".pdfcompare.yaml"))
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("PDFCOMPARE")
	viper.AutomaticEnv()
	viper.ReadInConfig()

	// Config file fills in flags the user did not set.
	if config.RulesPath == "" {
		config.RulesPath = viper.GetString("rules")
	}
	if config.DictionaryPath == "" {
		config.DictionaryPath = viper.GetString("dict")
	}
	if config.OutputDir == "" {
		config.OutputDir = viper.GetString("out")
	}
	if config.HistoryPath == "" {
		config.HistoryPath = viper.GetString("ledger")
	}
	if slackWebhook == "" {
		slackWebhook = viper.GetString("slack_webhook")
	}
}

func renderHelp(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FF99")).
		MarginBottom(1)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Println(titleStyle.Render(fmt.Sprintf("PDFCOMPARE %s", version.Current)))
	fmt.Println("Text comparison for insurance proposal PDFs.")

	fmt.Println(titleStyle.Render("USAGE"))
	fmt.Printf("  %s\n\n", cmd.UseLine())

	fmt.Println(titleStyle.Render("COMMANDS"))
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			fmt.Printf("  %-12s %s\n", c.Name(), c.Short)
		}
	}
	fmt.Println("")

	fmt.Println(titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		output := fmt.Sprintf("  --%-18s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			output += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Println(flagStyle.Render(output))
	})
	fmt.Println("")
}
