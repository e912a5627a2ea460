// Package log builds the logrus logger shared by the emulator's components.
// The logger carries diagnostics only; command output never goes through it.
package log

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultLevel keeps the terminal quiet unless something goes wrong.
const DefaultLevel = "warn"

// New returns a text logger writing to out at the named level. An empty level
// means DefaultLevel.
func New(out io.Writer, level string) (*logrus.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't parse log level %q", level)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger, nil
}
