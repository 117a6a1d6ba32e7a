package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/posidlab/pdfcompare/pkg/config"
)

// fakeRunner records the command and returns a fixed exit code. The
// probe callback runs at invocation time so tests can observe the
// filesystem state the real bundler would see.
type fakeRunner struct {
	exitCode int
	cmds     []Command
	probe    func()
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) (int, error) {
	f.cmds = append(f.cmds, cmd)
	if f.probe != nil {
		f.probe()
	}
	return f.exitCode, nil
}

func cfg(distDir string) config.BuildConfig {
	c := config.DefaultBuildConfig()
	c.DistDir = distDir
	return c
}

func TestArtifactPath(t *testing.T) {
	for _, version := range []string{"1.0", "2.3.1", "0.0.1-rc1"} {
		got := ArtifactPath("dist", version)
		want := filepath.Join("dist", "PDF_Compare_v"+version+".exe")
		if got != want {
			t.Errorf("ArtifactPath(%q) = %q, want %q", version, got, want)
		}
	}
}

func TestRunSuccessBranch(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	runner := &fakeRunner{exitCode: 0}
	var out bytes.Buffer

	rep, err := Run(context.Background(), Options{
		Version: "1.2",
		Config:  cfg(filepath.Join(dir, "dist")),
		Stdout:  &out,
		Runner:  runner,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !rep.Succeeded() {
		t.Error("expected success for exit code 0")
	}
	if !strings.Contains(out.String(), "Build Complete") {
		t.Errorf("expected 'Build Complete' in output, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Build Failed") {
		t.Error("success output must not mention failure")
	}
}

func TestRunFailureBranch(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	runner := &fakeRunner{exitCode: 1}
	var out bytes.Buffer

	rep, err := Run(context.Background(), Options{
		Version: "1.2",
		Config:  cfg(filepath.Join(t.TempDir(), "dist")),
		Stdout:  &out,
		Runner:  runner,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if rep.Succeeded() {
		t.Error("expected failure for exit code 1")
	}
	if !strings.Contains(out.String(), "Build Failed") {
		t.Errorf("expected 'Build Failed' in output, got:\n%s", out.String())
	}
	// All four troubleshooting hints must print.
	for _, hint := range []string{"1.", "2.", "3.", "4."} {
		if !strings.Contains(out.String(), hint) {
			t.Errorf("missing troubleshooting hint %s", hint)
		}
	}
}

func TestRunClearsOutputDirBeforeBundler(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dist := filepath.Join(t.TempDir(), "dist")
	if err := os.MkdirAll(dist, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dist, "stale.exe"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	runner.probe = func() {
		if _, err := os.Stat(dist); !os.IsNotExist(err) {
			t.Error("output dir still exists when the bundler runs")
		}
	}

	_, err := Run(context.Background(), Options{
		Version: "1.0",
		Config:  cfg(dist),
		Stdout:  &bytes.Buffer{},
		Runner:  runner,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(runner.cmds) != 1 {
		t.Fatalf("expected 1 bundler invocation, got %d", len(runner.cmds))
	}
}

func TestRunBundlerInvocation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	runner := &fakeRunner{}
	_, err := Run(context.Background(), Options{
		Version: "2.0",
		Config:  cfg(filepath.Join(t.TempDir(), "dist")),
		Stdout:  &bytes.Buffer{},
		Runner:  runner,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	cmd := runner.cmds[0]
	if cmd.Name != "pyinstaller" {
		t.Errorf("bundler = %q, want pyinstaller", cmd.Name)
	}

	args := strings.Join(cmd.Args, " ")
	for _, want := range []string{
		"--onefile", "--windowed", "--clean",
		"--name PDF_Compare_v2.0",
		"--hidden-import fitz",
		"--exclude-module matplotlib",
		"pdf_text_compare_posid.py",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("bundler args missing %q, got: %s", want, args)
		}
	}
	if n := strings.Count(args, "--hidden-import"); n != 4 {
		t.Errorf("hidden imports = %d, want 4", n)
	}
	if n := strings.Count(args, "--exclude-module"); n != 4 {
		t.Errorf("excluded modules = %d, want 4", n)
	}

	env := strings.Join(cmd.Env, " ")
	if !strings.Contains(env, "PDF_COMPARE_VERSION=2.0") {
		t.Errorf("missing version env, got: %s", env)
	}
	if !strings.Contains(env, "PDF_COMPARE_RELEASE_DATE=") {
		t.Errorf("missing release date env, got: %s", env)
	}
}

func TestRunPromptsForVersion(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	runner := &fakeRunner{}
	var out bytes.Buffer

	rep, err := Run(context.Background(), Options{
		Config:  cfg(filepath.Join(t.TempDir(), "dist")),
		Stdin:   strings.NewReader("3.1\n"),
		Stdout:  &out,
		Runner:  runner,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rep.Version != "3.1" {
		t.Errorf("version = %q, want 3.1", rep.Version)
	}
	if !strings.Contains(out.String(), "Version: ") {
		t.Error("expected interactive version prompt")
	}
}

func TestRunRejectsEmptyVersion(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Run(context.Background(), Options{
		Config:  cfg(filepath.Join(t.TempDir(), "dist")),
		Stdin:   strings.NewReader("\n"),
		Stdout:  &bytes.Buffer{},
		Runner:  &fakeRunner{},
	})
	if err == nil {
		t.Fatal("expected error for empty version")
	}
}
