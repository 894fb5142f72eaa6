// Package logging builds the structured logger shared by the command layer.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to w. Debug output is enabled by debug or by DEBUG=TRUE;
// LOG_LEVEL, when it parses, overrides both. Without either the logger only reports errors.
func New(w io.Writer, debug bool, version string) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	debug = debug || os.Getenv("DEBUG") == "TRUE"

	if debug {
		log.SetLevel(getLogLevel(logrus.DebugLevel))
	} else {
		log.SetLevel(getLogLevel(logrus.ErrorLevel))
	}

	return log.WithFields(logrus.Fields{
		"debug":   debug,
		"version": version,
	})
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard

	return logrus.NewEntry(log)
}

func getLogLevel(fallback logrus.Level) logrus.Level {
	strLevel := os.Getenv("LOG_LEVEL")

	level, err := logrus.ParseLevel(strLevel)
	if err != nil {
		return fallback
	}

	return level
}
