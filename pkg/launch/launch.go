// Package launch checks that the GUI's interpreter dependencies are
// importable, installs the missing ones, and starts the application
// in the foreground.
package launch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/posidlab/pdfcompare/internal/audit"
	"github.com/posidlab/pdfcompare/pkg/build"
	"github.com/posidlab/pdfcompare/pkg/config"
)

// Options configures one launch run. A zero Config falls back to
// config.DefaultLaunchConfig.
type Options struct {
	Config config.LaunchConfig

	Stdout io.Writer
	Runner build.Runner
}

// Report records what the launch flow did.
type Report struct {
	Installed []string // package names an install was attempted for
	ExitCode  int      // GUI process exit code
}

// Run probes each dependency, installs the missing ones, then starts
// the GUI and waits for it. A failed install is not treated as an
// error; the GUI launch surfaces the import failure itself.
func Run(ctx context.Context, opts Options) (*Report, error) {
	applyDefaults(&opts)
	cfg := opts.Config

	rep := &Report{}

	for _, pkg := range cfg.Packages {
		if probe(ctx, opts, pkg.ImportName) {
			continue
		}

		fmt.Fprintf(opts.Stdout, "%s not found, installing %s...\n", pkg.ImportName, pkg.PackageName)
		// Install result is intentionally ignored.
		opts.Runner.Run(ctx, build.Command{
			Name: cfg.Installer,
			Args: []string{"install", "-q", pkg.PackageName},
		})
		audit.LogAction("installed", pkg.PackageName, "missing dependency")
		rep.Installed = append(rep.Installed, pkg.PackageName)
	}

	fmt.Fprintf(opts.Stdout, "Starting %s...\n", cfg.Entry)
	code, err := opts.Runner.Run(ctx, build.Command{
		Name: cfg.Interpreter,
		Args: []string{cfg.Entry},
	})
	if err != nil {
		return nil, fmt.Errorf("launching %s: %w", cfg.Entry, err)
	}
	rep.ExitCode = code
	return rep, nil
}

func probe(ctx context.Context, opts Options, importName string) bool {
	code, err := opts.Runner.Run(ctx, build.Command{
		Name:  opts.Config.Interpreter,
		Args:  []string{"-c", "import " + importName},
		Quiet: true,
	})
	return err == nil && code == 0
}

func applyDefaults(opts *Options) {
	def := config.DefaultLaunchConfig()
	cfg := &opts.Config
	if cfg.Interpreter == "" {
		cfg.Interpreter = def.Interpreter
	}
	if cfg.Installer == "" {
		cfg.Installer = def.Installer
	}
	if cfg.Packages == nil {
		cfg.Packages = def.Packages
	}
	if cfg.Entry == "" {
		cfg.Entry = def.Entry
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Runner == nil {
		opts.Runner = &build.ExecRunner{Stdout: opts.Stdout, Stderr: opts.Stdout}
	}
}
