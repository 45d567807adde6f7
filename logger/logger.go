// SPDX-License-Identifier: MIT

// Package logger provides leveled, module-scoped loggers backed by
// github.com/op/go-logging and the shared --log command line flag.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

// DefaultLogLevel is used when an unknown level string is supplied.
const DefaultLogLevel = "INFO"

// defaultFormat renders "15:04:05.000 module LEVL message" with level colors.
const defaultFormat = `%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}`

// LogLevelFlag selects the verbosity of command line tools.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
	Value:   "info",
}

// Logger is the subset of *logging.Logger the rwe packages depend on.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Noticef(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

var _ Logger = (*logging.Logger)(nil)

// NewLogger creates a logger for module writing to stdout at the given level.
// Unknown levels fall back to DefaultLogLevel.
func NewLogger(level string, module string) *logging.Logger {
	log := logging.MustGetLogger(module)
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatter := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultFormat))
	leveled := logging.AddModuleLevel(formatter)

	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		lvl, _ = logging.LogLevel(DefaultLogLevel)
	}
	leveled.SetLevel(lvl, module)
	log.SetBackend(leveled)

	return log
}

// ParseTime splits elapsed into whole hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (hours, minutes, seconds uint32) {
	total := uint32(elapsed.Round(time.Second).Seconds())
	hours = total / 3600
	minutes = (total % 3600) / 60
	seconds = total % 60

	return hours, minutes, seconds
}
