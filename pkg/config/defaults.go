// Package config defines default configuration and tuning parameters
// for extraction, matching, and the build/launch orchestrators.
package config

// MatchConfig defines the constraints for block-level matching.
type MatchConfig struct {
	// SimilarityThreshold is the minimum SequenceMatcher ratio for two
	// blocks to be considered the same section (0.0 - 1.0).
	SimilarityThreshold float64
	// SectionTypeBonus is added to the score when both blocks carry the
	// same section type.
	SectionTypeBonus float64
}

// DiffConfig defines the parameters for the resync word diff.
type DiffConfig struct {
	// Lookahead is how many words ahead each side is searched when the
	// streams fall out of sync.
	Lookahead int
	// MaxMerge is the maximum number of consecutive words joined when
	// testing a split-word match.
	MaxMerge int
}

// LayoutConfig defines the page-geometry cutoffs used by the section parser.
type LayoutConfig struct {
	// HeaderYMax: lines starting above this Y coordinate are headers.
	HeaderYMax float64
	// FooterYMin: lines starting below this Y coordinate are footers.
	FooterYMin float64
	// SameLineThreshold is the max Y delta for two blocks to count as
	// one visual line.
	SameLineThreshold float64
}

// BuildConfig defines the defaults for the build orchestrator.
type BuildConfig struct {
	// Bundler is the external packaging tool binary.
	Bundler string
	// DistDir is the bundler output directory, cleared before each run.
	DistDir string
	// Entry is the application entry script handed to the bundler.
	Entry string
	// Icon and DataFile are bundled assets.
	Icon     string
	DataFile string
	// HiddenImports and ExcludedModules tune the bundler's dependency walk.
	HiddenImports   []string
	ExcludedModules []string
}

// LaunchConfig defines the defaults for the launch orchestrator.
type LaunchConfig struct {
	// Interpreter runs the dependency probes and the GUI entry point.
	Interpreter string
	// Installer installs missing packages.
	Installer string
	// Packages maps importable module names to installer package names.
	Packages []ProbeTarget
	// Entry is the GUI entry script.
	Entry string
}

// ProbeTarget pairs an import name with the package that provides it.
type ProbeTarget struct {
	ImportName  string
	PackageName string
}

// Defaults.
const (
	DefaultOutputDir  = "pdfcompare-out"
	DefaultStateDir   = ".pdfcompare"
	ArtifactPrefix    = "PDF_Compare_v"
	ArtifactExtension = ".exe"
)

// DefaultMatchConfig returns default block-matching values.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		SimilarityThreshold: 0.6,
		SectionTypeBonus:    0.1,
	}
}

// DefaultDiffConfig returns default resync-diff values.
func DefaultDiffConfig() DiffConfig {
	return DiffConfig{
		Lookahead: 5,
		MaxMerge:  5,
	}
}

// DefaultLayoutConfig returns the page geometry used by the proposal
// documents this tool was built for (A4 at 72 dpi).
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		HeaderYMax:        85,
		FooterYMin:        750,
		SameLineThreshold: 5,
	}
}

// DefaultBuildConfig returns the bundler invocation the release packaging
// has always used.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Bundler:  "pyinstaller",
		DistDir:  "dist",
		Entry:    "pdf_text_compare_posid.py",
		Icon:     "posid_logo.ico",
		DataFile: "posid_logo.png",
		HiddenImports: []string{
			"fitz",
			"PyQt6.QtWidgets",
			"PyQt6.QtGui",
			"PyQt6.QtCore",
		},
		ExcludedModules: []string{
			"matplotlib",
			"numpy",
			"pandas",
			"scipy",
		},
	}
}

// DefaultLaunchConfig returns the runtime dependencies of the GUI build.
func DefaultLaunchConfig() LaunchConfig {
	return LaunchConfig{
		Interpreter: "python3",
		Installer:   "pip",
		Packages: []ProbeTarget{
			{ImportName: "PyQt6", PackageName: "PyQt6"},
			{ImportName: "fitz", PackageName: "PyMuPDF"},
		},
		Entry: "insurance_compare_gui.py",
	}
}
