package shell

import (
	"fmt"

	"github.com/pkg/errors"
)

// Dispatch runs one trimmed command line. It returns ErrExit when the line
// ends the session; any other failure is reported on the shell's writers and
// swallowed so the session keeps going.
func (s *Shell) Dispatch(line string) error {

	fields, err := s.parser.Parse(line)
	if err != nil {
		s.report(err)
		return nil
	}

	if len(fields) == 0 {
		return nil
	}

	cmd := fields[0]
	args := fields[1:]

	fn, ok := s.builtins[cmd]
	if !ok {
		s.report(&UnknownCommandError{Line: line})
		return nil
	}

	s.log.WithField("command", cmd).WithField("args", len(args)).Debug("dispatching command")

	if err := s.invoke(fn, args); err != nil {
		if errors.Is(err, ErrExit) {
			return ErrExit
		}

		s.report(err)
	}

	return nil
}

func (s *Shell) invoke(fn Builtin, args []string) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			s.log.WithField("panic", recovered).Error("builtin panicked")
			err = errors.Errorf("%v", recovered)
		}
	}()

	return fn(args, s)
}

func (s *Shell) report(err error) {
	if isNotice(err) {
		fmt.Fprintln(s.Out, err)
		return
	}

	fmt.Fprintln(s.Err, "Error:", err)
}
