// Package build drives the desktop packaging flow: clean the output
// directory, run the bundler with the fixed flag set, and report the
// produced artifact or the failure hints.
package build

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/posidlab/pdfcompare/internal/audit"
	"github.com/posidlab/pdfcompare/pkg/config"
)

var ErrEmptyVersion = errors.New("version must not be empty")

// Options configures one build run. A zero Config falls back to
// config.DefaultBuildConfig.
type Options struct {
	Version string // empty → prompt on Stdin
	Config  config.BuildConfig

	Stdin  io.Reader
	Stdout io.Writer
	Runner Runner
}

// Report is the outcome of a build run.
type Report struct {
	Version     string
	ReleaseDate string
	ExitCode    int
	Artifacts   []Artifact
}

type Artifact struct {
	Name    string
	Size    int64
	AbsPath string
}

func (r *Report) Succeeded() bool { return r.ExitCode == 0 }

// ArtifactPath returns the expected bundler output for a version.
func ArtifactPath(distDir, version string) string {
	return filepath.Join(distDir, config.ArtifactPrefix+version+config.ArtifactExtension)
}

// Run executes the full build flow and prints the canned success or
// failure report. The returned error covers orchestration failures
// only; a non-zero bundler exit is reported through Report.ExitCode.
func Run(ctx context.Context, opts Options) (*Report, error) {
	applyDefaults(&opts)
	cfg := opts.Config

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		var err error
		version, err = promptVersion(opts.Stdin, opts.Stdout)
		if err != nil {
			return nil, err
		}
	}
	if version == "" {
		return nil, ErrEmptyVersion
	}

	releaseDate := time.Now().Format("2006-01-02")
	rep := &Report{Version: version, ReleaseDate: releaseDate}

	// Output dir must be gone before the bundler runs.
	if _, err := os.Stat(cfg.DistDir); err == nil {
		if err := os.RemoveAll(cfg.DistDir); err != nil {
			return nil, fmt.Errorf("removing %s: %w", cfg.DistDir, err)
		}
		audit.LogAction("removed", cfg.DistDir, "pre-build cleanup")
	}

	fmt.Fprintf(opts.Stdout, "Building PDF_Compare v%s (%s)...\n", version, releaseDate)

	code, err := opts.Runner.Run(ctx, Command{
		Name: cfg.Bundler,
		Args: bundlerArgs(cfg, version),
		Env: []string{
			"PDF_COMPARE_VERSION=" + version,
			"PDF_COMPARE_RELEASE_DATE=" + releaseDate,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", cfg.Bundler, err)
	}
	rep.ExitCode = code

	if code != 0 {
		printFailure(opts.Stdout, cfg, code)
		return rep, nil
	}

	rep.Artifacts = collectArtifacts(cfg.DistDir)
	printSuccess(opts.Stdout, rep)
	return rep, nil
}

func applyDefaults(opts *Options) {
	def := config.DefaultBuildConfig()
	cfg := &opts.Config
	if cfg.Bundler == "" {
		cfg.Bundler = def.Bundler
	}
	if cfg.DistDir == "" {
		cfg.DistDir = def.DistDir
	}
	if cfg.Entry == "" {
		cfg.Entry = def.Entry
	}
	if cfg.Icon == "" {
		cfg.Icon = def.Icon
	}
	if cfg.DataFile == "" {
		cfg.DataFile = def.DataFile
	}
	if cfg.HiddenImports == nil {
		cfg.HiddenImports = def.HiddenImports
	}
	if cfg.ExcludedModules == nil {
		cfg.ExcludedModules = def.ExcludedModules
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Runner == nil {
		opts.Runner = &ExecRunner{Stdout: opts.Stdout, Stderr: opts.Stdout}
	}
}

func promptVersion(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Version: ")
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", ErrEmptyVersion
	}
	return strings.TrimSpace(sc.Text()), nil
}

func bundlerArgs(cfg config.BuildConfig, version string) []string {
	args := []string{
		"--onefile",
		"--windowed",
		"--clean",
		"--optimize", "2",
		"--name", config.ArtifactPrefix + version,
		"--icon", cfg.Icon,
		"--add-data", cfg.DataFile + string(os.PathListSeparator) + ".",
		"--distpath", cfg.DistDir,
	}
	for _, imp := range cfg.HiddenImports {
		args = append(args, "--hidden-import", imp)
	}
	for _, mod := range cfg.ExcludedModules {
		args = append(args, "--exclude-module", mod)
	}
	return append(args, cfg.Entry)
}

func collectArtifacts(distDir string) []Artifact {
	matches, err := filepath.Glob(filepath.Join(distDir, "*"+config.ArtifactExtension))
	if err != nil {
		return nil
	}

	var out []Artifact
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		abs, err := filepath.Abs(m)
		if err != nil {
			abs = m
		}
		out = append(out, Artifact{Name: filepath.Base(m), Size: info.Size(), AbsPath: abs})
	}
	return out
}

func printSuccess(w io.Writer, rep *Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, " Build Complete: PDF_Compare v%s\n", rep.Version)
	fmt.Fprintln(w, "========================================")
	for _, a := range rep.Artifacts {
		fmt.Fprintf(w, "  %s\n", a.Name)
		fmt.Fprintf(w, "    size: %d bytes\n", a.Size)
		fmt.Fprintf(w, "    path: %s\n", a.AbsPath)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Checklist:")
	fmt.Fprintln(w, "  [ ] Run the executable on a clean machine")
	fmt.Fprintln(w, "  [ ] Verify the version string in the title bar")
	fmt.Fprintln(w, "  [ ] Compare two sample documents end to end")
}

func printFailure(w io.Writer, cfg config.BuildConfig, code int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, " Build Failed (exit code %d)\n", code)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Troubleshooting:")
	fmt.Fprintf(w, "  1. Verify %s is installed and on PATH\n", cfg.Bundler)
	fmt.Fprintln(w, "  2. Verify PyQt6, PyMuPDF and pyinstaller-hooks are installed")
	fmt.Fprintf(w, "  3. Verify %s exists\n", cfg.Icon)
	fmt.Fprintf(w, "  4. Verify %s exists\n", cfg.DataFile)
}
