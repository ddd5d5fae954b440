// Package compiler runs the external Closure Compiler process.
package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// Output is what the compiler printed
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExitError is returned when the compiler exits with a failure code
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("compiler exited with code %d: %s", e.Code, GetErrorMessage(e.Code))
}

// Runner executes compiler commands
type Runner struct {
	execCommand func(name string, args []string, stdout, stderr io.Writer) Commander
}

// New creates a new runner backed by os/exec
func New() *Runner {
	return &Runner{
		execCommand: func(name string, args []string, stdout, stderr io.Writer) Commander {
			cmd := exec.Command(name, args...)
			cmd.Stdout = stdout
			cmd.Stderr = stderr

			return cmd
		},
	}
}

// Run executes the compiler and blocks until it exits.
// The captured output is returned even when the compiler fails.
func (r *Runner) Run(compilerPath string, args []string) (*Output, error) {
	var stdout, stderr bytes.Buffer

	c := r.execCommand(compilerPath, args, &stdout, &stderr)
	err := c.Run()

	out := &Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			if IsSuccess(out.ExitCode) {
				return out, nil
			}

			return out, &ExitError{Code: out.ExitCode, Stderr: out.Stderr}
		}

		return out, fmt.Errorf("failed to run compiler: %w", err)
	}

	return out, nil
}
