// Package logging builds the process-wide hclog logger.
package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

const DefaultLevel = "warn"

type Options struct {
	Level  string
	Output io.Writer
	JSON   bool
}

// New returns the root "pomo" logger. Unknown levels fall back to warn so a
// typo in the config file never makes the status line noisy.
func New(opts Options) hclog.Logger {
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.LevelFromString(DefaultLevel)
	}
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "pomo",
		Level:      level,
		Output:     output,
		JSONFormat: opts.JSON,
	})
}

// Discard returns a logger that drops everything, for tests and plugins.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.Off})
}
