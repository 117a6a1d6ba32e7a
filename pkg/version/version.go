package version

// Current defines the application version.
// Update this single line to propagate version changes everywhere.
const Current = "v0.9.5"

const AppName = "pdfcompare"

// VersionURL is the remote endpoint queried by `pdfcompare update`.
const VersionURL = "https://posidlab.github.io/pdfcompare/latest.txt"

// Build metadata, injected via ldflags on release builds:
//
//	-X github.com/posidlab/pdfcompare/pkg/version.Commit=$(git rev-parse --short HEAD)
//	-X github.com/posidlab/pdfcompare/pkg/version.Date=$(date -u +%Y-%m-%d)
var (
	Commit = "none"
	Date   = "unknown"
)
