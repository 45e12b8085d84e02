// Package clilog configures the process-wide logrus logger used by
// cmd/c2llvm for -v/--verbose and -d/--debug output, replacing an
// ad hoc env-var-gated fmt.Fprintf debug trace with a structured
// logger.
package clilog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger every package under cmd/c2llvm writes
// through.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetLevel(logrus.WarnLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
}

// Configure sets the logger's verbosity from the driver's -v/-d flags.
// debug implies verbose.
func Configure(verbose, debug bool) {
	switch {
	case debug:
		Log.SetLevel(logrus.DebugLevel)
	case verbose:
		Log.SetLevel(logrus.InfoLevel)
	default:
		Log.SetLevel(logrus.WarnLevel)
	}
}
