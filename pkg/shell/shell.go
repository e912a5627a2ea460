package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// type Builtin
type Builtin func(args []string, s *Shell) error

// Options configure a Shell. Navigator is required.
type Options struct {
	User      string
	Navigator Navigator
	// Opener reads the startup script; the real filesystem when nil.
	Opener FileOpener
	Logger logrus.FieldLogger
	// Styled colors the prompt.
	Styled bool
}

// type Shell
type Shell struct {
	in       *bufio.Reader
	Out      io.Writer
	Err      io.Writer
	user     string
	nav      Navigator
	builtins map[string]Builtin
	parser   Parser
	opener   FileOpener
	prompt   Prompt
	log      logrus.FieldLogger
	state    State
}

// func New
func New(reader io.Reader, out, errw io.Writer, opts Options) *Shell {

	logger := opts.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	opener := opts.Opener
	if opener == nil {
		opener = &DefaultFileOpener{}
	}

	s := &Shell{
		in:       bufio.NewReader(reader),
		Out:      out,
		Err:      errw,
		user:     opts.User,
		nav:      opts.Navigator,
		builtins: make(map[string]Builtin),
		parser:   NewDefaultParser(),
		opener:   opener,
		prompt:   Prompt{User: opts.User, Styled: opts.Styled},
		log:      logger,
		state:    StateIdle,
	}

	s.registerBuiltins()
	return s
}

// Run feeds the script at scriptPath (if any) and then interactive input into
// Dispatch until exit is dispatched or input ends. Both return nil. A missing
// script is reported and skipped.
func (s *Shell) Run(ctx context.Context, scriptPath string) error {

	if s.state != StateIdle {
		return errors.Errorf("session is already %s", s.state)
	}

	s.transition(StateRunning)
	defer s.transition(StateTerminated)

	if scriptPath != "" {
		exited, err := s.runScript(ctx, scriptPath)
		if exited || err != nil {
			return err
		}
	}

	_, err := s.drain(ctx, &interactiveSource{s: s}, false)
	return err
}

func (s *Shell) runScript(ctx context.Context, scriptPath string) (bool, error) {

	script, err := s.opener.OpenRead(scriptPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = &ScriptNotFoundError{Path: scriptPath}
		} else {
			err = errors.Wrapf(err, "couldn't open script %s", scriptPath)
		}

		s.report(err)
		s.log.WithError(err).Warn("falling back to interactive input")
		return false, nil
	}
	defer func() {
		if err := script.Close(); err != nil {
			s.log.WithError(err).WithField("script", scriptPath).Warn("couldn't close script")
		}
	}()

	exited, err := s.drain(ctx, &scriptSource{scanner: bufio.NewScanner(script)}, true)
	switch {
	case exited:
		return true, nil
	case ctx.Err() != nil:
		return false, ctx.Err()
	case err != nil:
		fmt.Fprintln(s.Err, "Error while executing script:", err)
	}

	return false, nil
}

// drain dispatches every line of src. It reports whether exit was
// dispatched; end of input is not an error.
func (s *Shell) drain(ctx context.Context, src lineSource, echo bool) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		line = strings.TrimSpace(line)
		if isComment(line) {
			continue
		}

		if echo {
			fmt.Fprintf(s.Out, "%s%s\n", s.prompt.Render(s.nav.CurrentPath()), line)
		}

		if err := s.Dispatch(line); errors.Is(err, ErrExit) {
			return true, nil
		}
	}
}

// lineSource feeds command lines into the session.
type lineSource interface {
	// Next returns the next raw line, or io.EOF once the source is exhausted.
	Next() (string, error)
}

type scriptSource struct {
	scanner *bufio.Scanner
}

func (src *scriptSource) Next() (string, error) {
	if src.scanner.Scan() {
		return src.scanner.Text(), nil
	}
	if err := src.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type interactiveSource struct {
	s   *Shell
	eof bool
}

func (src *interactiveSource) Next() (string, error) {
	if src.eof {
		return "", io.EOF
	}

	fmt.Fprint(src.s.Out, src.s.prompt.Render(src.s.nav.CurrentPath()))

	line, err := src.s.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		src.eof = true
		if line == "" {
			// leave the terminal on a fresh line after the unanswered prompt
			fmt.Fprintln(src.s.Out)
			return "", io.EOF
		}
		return line, nil
	}
	return line, err
}
