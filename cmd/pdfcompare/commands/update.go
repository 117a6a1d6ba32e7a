package commands

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/posidlab/pdfcompare/pkg/version"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer release",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking for updates...")

		latest, err := fetchLatestVersion()
		if err != nil {
			fmt.Printf("Failed to check version: %v\n", err)
			return
		}

		if latest == version.Current {
			fmt.Printf("You are already running the latest version (%s).\n", version.Current)
			return
		}
		if latest < version.Current {
			fmt.Printf("You are running a newer version (%s) than the latest release (%s).\n", version.Current, latest)
			return
		}

		fmt.Printf("Found new version: %s (Current: %s)\n", latest, version.Current)
		fmt.Println("Download: https://github.com/posidlab/pdfcompare/releases/latest")
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func fetchLatestVersion() (string, error) {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(version.VersionURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
