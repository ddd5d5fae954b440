package compiler

import "strings"

// CompilationLevel is the optimization flag passed to Closure Compiler
var CompilationLevel = []string{"--compilation_level", "ADVANCED_OPTIMIZATIONS"}

// ShellCommand is a fully resolved compiler invocation
type ShellCommand struct {
	Path string
	Args []string
}

// GetBuildCommand returns the compiler invocation for the given input files.
// Files are passed in order after the flags.
func GetBuildCommand(compilerPath string, files []string) *ShellCommand {
	return &ShellCommand{
		Path: compilerPath,
		Args: BuildCommandArgs(files),
	}
}

// BuildCommandArgs builds the command arguments for the compiler
func BuildCommandArgs(files []string) []string {
	cmdArgs := make([]string, 0, len(CompilationLevel)+len(files))
	cmdArgs = append(cmdArgs, CompilationLevel...)
	cmdArgs = append(cmdArgs, files...)

	return cmdArgs
}

func (c *ShellCommand) String() string {
	return c.Path + " " + strings.Join(c.Args, " ")
}
