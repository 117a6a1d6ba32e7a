package launch

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/posidlab/pdfcompare/pkg/build"
	"github.com/posidlab/pdfcompare/pkg/config"
)

// scriptedRunner answers import probes from a set of available
// modules and records every command.
type scriptedRunner struct {
	available   map[string]bool
	installExit int
	cmds        []build.Command
}

func (s *scriptedRunner) Run(_ context.Context, cmd build.Command) (int, error) {
	s.cmds = append(s.cmds, cmd)

	if len(cmd.Args) == 2 && cmd.Args[0] == "-c" {
		mod := strings.TrimPrefix(cmd.Args[1], "import ")
		if s.available[mod] {
			return 0, nil
		}
		return 1, nil
	}
	if len(cmd.Args) > 0 && cmd.Args[0] == "install" {
		return s.installExit, nil
	}
	return 0, nil
}

func (s *scriptedRunner) installs() []build.Command {
	var out []build.Command
	for _, c := range s.cmds {
		if len(c.Args) > 0 && c.Args[0] == "install" {
			out = append(out, c)
		}
	}
	return out
}

func TestRunSkipsInstallWhenImportable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	runner := &scriptedRunner{available: map[string]bool{"PyQt6": true, "fitz": true}}
	rep, err := Run(context.Background(), Options{
		Stdout: &bytes.Buffer{},
		Runner: runner,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(runner.installs()) != 0 {
		t.Errorf("expected zero installs, got %d", len(runner.installs()))
	}
	if len(rep.Installed) != 0 {
		t.Errorf("report lists installs: %v", rep.Installed)
	}

	// Last command is the GUI launch itself.
	last := runner.cmds[len(runner.cmds)-1]
	if last.Name != "python3" || last.Args[0] != config.DefaultLaunchConfig().Entry {
		t.Errorf("expected GUI launch, got %s %v", last.Name, last.Args)
	}
}

func TestRunInstallsEachMissingPackageOnce(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	runner := &scriptedRunner{available: map[string]bool{"PyQt6": true}}
	rep, err := Run(context.Background(), Options{
		Stdout: &bytes.Buffer{},
		Runner: runner,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	installs := runner.installs()
	if len(installs) != 1 {
		t.Fatalf("expected exactly 1 install, got %d", len(installs))
	}
	if got := installs[0].Args; got[len(got)-1] != "PyMuPDF" {
		t.Errorf("installed %v, want PyMuPDF", got)
	}
	if !strings.Contains(strings.Join(installs[0].Args, " "), "-q") {
		t.Error("expected quiet install")
	}
	if len(rep.Installed) != 1 || rep.Installed[0] != "PyMuPDF" {
		t.Errorf("report.Installed = %v", rep.Installed)
	}
}

func TestRunIgnoresInstallFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	runner := &scriptedRunner{available: map[string]bool{}, installExit: 1}
	rep, err := Run(context.Background(), Options{
		Stdout: &bytes.Buffer{},
		Runner: runner,
	})
	if err != nil {
		t.Fatalf("Run failed despite failed installs: %v", err)
	}

	if len(runner.installs()) != 2 {
		t.Errorf("expected 2 install attempts, got %d", len(runner.installs()))
	}
	// GUI launch still happens after failed installs.
	last := runner.cmds[len(runner.cmds)-1]
	if last.Args[0] != config.DefaultLaunchConfig().Entry {
		t.Errorf("expected GUI launch after failed installs, got %v", last.Args)
	}
	if rep.ExitCode != 0 {
		t.Errorf("exit code = %d", rep.ExitCode)
	}
}

func TestProbeCommandsAreQuiet(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	runner := &scriptedRunner{available: map[string]bool{}}
	if _, err := Run(context.Background(), Options{
		Stdout: &bytes.Buffer{},
		Runner: runner,
	}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, c := range runner.cmds {
		if len(c.Args) == 2 && c.Args[0] == "-c" && !c.Quiet {
			t.Errorf("probe %v should discard output", c.Args)
		}
	}
}
