package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrEnvironment is returned when the source root or the compiler is missing
	ErrEnvironment = errors.New("environment error")

	// ErrFileNotFound is returned when the archive references a file that does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrParse is returned when a version header cannot be parsed
	ErrParse = errors.New("parse error")

	// ErrCompile is returned when the compiler fails or its output is unusable
	ErrCompile = errors.New("compile error")
)

// CompileError describes a failed compiler run.
// It matches ErrCompile with errors.Is.
type CompileError struct {
	// ExitCode of the compiler process, -1 if it never ran to completion
	ExitCode int

	// Stderr is the captured error stream of the compiler
	Stderr string

	Err error
}

func (e *CompileError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", ErrCompile, e.Err)
	}

	return fmt.Sprintf("%s: %v\n%s", ErrCompile, e.Err, e.Stderr)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func (e *CompileError) Is(target error) bool {
	return target == ErrCompile
}
