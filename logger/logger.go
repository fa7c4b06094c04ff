// Package logger creates leveled, colored loggers shared by the solver and
// the command-line tool.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

// LogLevelFlag selects the verbosity of every logger created from the CLI.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
	Value:   "info",
}

const defaultFormat = "%{color}%{level:-8s} %{shortpkg}/%{shortfile}%{color:reset}: %{message}"

// NewLogger returns a logger for module writing to stderr at the given
// level, which keeps stdout free for results. Unknown levels fall back to
// INFO.
func NewLogger(level, module string) *logging.Logger {
	return NewLoggerTo(os.Stderr, level, module)
}

// NewLoggerTo is NewLogger with an explicit destination.
func NewLoggerTo(w io.Writer, level, module string) *logging.Logger {
	log := logging.MustGetLogger(module)
	format := logging.MustStringFormatter(defaultFormat)
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, module)
	log.SetBackend(leveled)
	// IsEnabledFor consults the package-level backend.
	logging.SetLevel(lvl, module)

	return log
}

// ParseTime splits elapsed into whole hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (hours, minutes, seconds uint32) {
	total := uint32(elapsed.Round(time.Second).Seconds())
	hours = total / 3600
	minutes = total % 3600 / 60
	seconds = total % 60

	return hours, minutes, seconds
}
