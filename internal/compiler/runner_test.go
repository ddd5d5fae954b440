package compiler

import (
	"errors"
	"io"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommander implements Commander interface for testing
type mockCommander struct {
	runFunc func() error
}

func (m *mockCommander) Run() error {
	return m.runFunc()
}

func TestBuildCommandArgs(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		wantArgs []string
	}{
		{
			name:     "core only",
			files:    []string{"/src/highlight.js"},
			wantArgs: []string{"--compilation_level", "ADVANCED_OPTIMIZATIONS", "/src/highlight.js"},
		},
		{
			name:  "core and modules keep order",
			files: []string{"/src/highlight.js", "/src/languages/c.js", "/src/languages/css.js"},
			wantArgs: []string{
				"--compilation_level", "ADVANCED_OPTIMIZATIONS",
				"/src/highlight.js", "/src/languages/c.js", "/src/languages/css.js",
			},
		},
		{
			name:     "no files",
			files:    nil,
			wantArgs: []string{"--compilation_level", "ADVANCED_OPTIMIZATIONS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantArgs, BuildCommandArgs(tt.files))
		})
	}
}

func TestGetBuildCommand(t *testing.T) {
	cmd := GetBuildCommand("/opt/closure/compiler", []string{"/src/highlight.js"})

	assert.Equal(t, "/opt/closure/compiler", cmd.Path)
	assert.Equal(t, []string{"--compilation_level", "ADVANCED_OPTIMIZATIONS", "/src/highlight.js"}, cmd.Args)
	assert.Equal(t, "/opt/closure/compiler --compilation_level ADVANCED_OPTIMIZATIONS /src/highlight.js", cmd.String())
}

func TestRunner_Run_Success(t *testing.T) {
	r := New()

	var gotName string
	var gotArgs []string

	r.execCommand = func(name string, args []string, stdout, stderr io.Writer) Commander {
		gotName = name
		gotArgs = args

		return &mockCommander{
			runFunc: func() error {
				_, _ = io.WriteString(stdout, "var a=1;\n")
				_, _ = io.WriteString(stderr, "0 error(s), 0 warning(s)\n")
				return nil
			},
		}
	}

	out, err := r.Run("/opt/closure/compiler", []string{"--compilation_level", "ADVANCED_OPTIMIZATIONS", "a.js"})
	require.NoError(t, err)

	assert.Equal(t, "/opt/closure/compiler", gotName)
	assert.Equal(t, []string{"--compilation_level", "ADVANCED_OPTIMIZATIONS", "a.js"}, gotArgs)
	assert.Equal(t, "var a=1;\n", out.Stdout)
	assert.Equal(t, "0 error(s), 0 warning(s)\n", out.Stderr)
	assert.Equal(t, 0, out.ExitCode)
}

func TestRunner_Run_NonExitError(t *testing.T) {
	r := New()

	// Mock exec.Command to return a non-exit error
	r.execCommand = func(name string, args []string, stdout, stderr io.Writer) Commander {
		return &mockCommander{
			runFunc: func() error {
				return errors.New("command not found")
			},
		}
	}

	out, err := r.Run("nonexistent", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command not found")
	assert.NotNil(t, out)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestRunner_Run_ExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	r := New()

	// Real process that fails with 3 errors
	r.execCommand = func(name string, args []string, stdout, stderr io.Writer) Commander {
		cmd := exec.Command("/bin/sh", "-c", "echo 'ERROR - Parse error' 1>&2; exit 3")
		cmd.Stdout = stdout
		cmd.Stderr = stderr

		return cmd
	}

	out, err := r.Run("/opt/closure/compiler", nil)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, exitErr.Stderr, "Parse error")
	assert.Contains(t, err.Error(), "3 compile errors")
	assert.Equal(t, 3, out.ExitCode)
}

func TestRunner_Run_RealProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	out, err := New().Run("/bin/sh", []string{"-c", "printf 'line1\\nline2\\n'"})
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", out.Stdout)
}

func TestNew(t *testing.T) {
	r := New()
	assert.NotNil(t, r)
	assert.NotNil(t, r.execCommand)
}
