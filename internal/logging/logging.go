// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options control logger setup.
type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// Init configures the standard logrus logger. Diagnostics go to stderr by
// default so stdout stays free for command output. An unknown level falls
// back to info and is reported in the returned error.
func Init(opts Options) error {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logrus.SetOutput(out)

	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		return err
	}
	logrus.SetLevel(level)
	return nil
}

// NewRun returns an entry tagged with a fresh run id and the command name.
func NewRun(command string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"run_id":  uuid.NewString(),
		"command": command,
	})
}
