// Package logging configures the process logger. Diagnostics go to stderr so
// listing output on stdout stays clean for piping.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

func New(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}
