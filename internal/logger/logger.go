// Package logger creates the CLI logger.
package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w, at debug level when verbose is set
func New(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix: "hlpack",
	})

	if verbose {
		l.SetLevel(log.DebugLevel)
	}

	return l
}
