// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is replaced by Init. The zero configuration logs text at info level.
var Log = logrus.New()

// Init configures Log. format is "json" or "text"; anything else selects
// json, which is what production deployments ship.
func Init(level, format string) {
	Log = New(level, format)
}

// New builds a logger without touching Log.
func New(level, format string) *logrus.Logger {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}

// Discard silences Log, for tests.
func Discard() {
	Log = logrus.New()
	Log.SetOutput(io.Discard)
}
