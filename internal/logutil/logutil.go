package logutil

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultLevel keeps normal runs quiet; only warnings and errors are shown.
const DefaultLevel = "warn"

// New returns a logger writing text records to w at the named level.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger, nil
}

// Discard returns a logger that drops everything, for tests and library callers.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
