package shell

import (
	"fmt"
	"io/fs"

	"github.com/pkg/errors"
)

// ErrExit is returned by the exit builtin to end the session.
var ErrExit = errors.New("exit")

// UsageError is a builtin called with the wrong arguments.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "Usage: " + e.Usage
}

// UnknownCommandError is a line whose keyword matches no builtin.
type UnknownCommandError struct {
	Line string
}

func (e *UnknownCommandError) Error() string {
	return "Unknown command: " + e.Line
}

// ScriptNotFoundError is a startup script that does not exist. It is not
// fatal: the session continues with interactive input.
type ScriptNotFoundError struct {
	Path string
}

func (e *ScriptNotFoundError) Error() string {
	return fmt.Sprintf("Script file '%s' not found.", e.Path)
}

func (e *ScriptNotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// notices are printed as-is on the output stream instead of as errors
func isNotice(err error) bool {
	var usage *UsageError
	var unknown *UnknownCommandError
	return errors.As(err, &usage) || errors.As(err, &unknown)
}
