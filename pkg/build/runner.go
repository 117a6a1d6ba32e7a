package build

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Command is one external process invocation. Quiet commands have
// their output discarded; probes use this.
type Command struct {
	Name  string
	Args  []string
	Env   []string // appended to the parent environment
	Dir   string
	Quiet bool
}

// Runner executes an external command and reports its exit code.
// Injected so orchestration branches can be tested without spawning
// real processes.
type Runner interface {
	Run(ctx context.Context, cmd Command) (int, error)
}

// ExecRunner runs commands with os/exec, wiring output to the given
// writers.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) (int, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	if !cmd.Quiet {
		c.Stdout = r.Stdout
		c.Stderr = r.Stderr
	}

	if err := c.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}
