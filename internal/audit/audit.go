package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogAction appends one line to ~/.pdfcompare/audit.log. Used for
// destructive or environment-changing steps (dist cleanup, dependency
// installs) so a failed build or launch leaves a trail.
func LogAction(action, target, detail string) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	logDir := filepath.Join(home, ".pdfcompare")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		os.Mkdir(logDir, 0755)
	}

	f, err := os.OpenFile(filepath.Join(logDir, "audit.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	// Format: [DATE] removed dist - pre-build cleanup
	entry := fmt.Sprintf("[%s] %s %s - %s\n",
		time.Now().Format(time.RFC3339),
		action,
		target,
		detail,
	)

	if _, err := f.WriteString(entry); err != nil {
		fmt.Printf("(Warning: Failed to write audit log)\n")
	}
}
