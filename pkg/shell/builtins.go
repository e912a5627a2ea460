package shell

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

func (s *Shell) registerBuiltins() {

	s.builtins["echo"] = func(args []string, s *Shell) error {
		fmt.Fprintln(s.Out, strings.Join(args, " "))
		return nil
	}

	s.builtins["exit"] = func(args []string, s *Shell) error {
		fmt.Fprintln(s.Out, "Goodbye!")
		return ErrExit
	}

	s.builtins["who"] = func(args []string, s *Shell) error {
		fmt.Fprintln(s.Out, s.user)
		return nil
	}

	s.builtins["pwd"] = func(args []string, s *Shell) error {
		fmt.Fprintln(s.Out, s.nav.CurrentPath())
		return nil
	}

	s.builtins["ls"] = func(args []string, s *Shell) error {
		names, err := s.nav.List()
		if err != nil {
			return err
		}

		for _, name := range names {
			fmt.Fprintln(s.Out, name)
		}
		return nil
	}

	s.builtins["cd"] = func(args []string, s *Shell) error {

		// extra arguments are ignored
		if len(args) == 0 {
			return &UsageError{Usage: "cd <directory>"}
		}

		return s.nav.ChangeDirectory(args[0])

	}

	s.builtins["find"] = func(args []string, s *Shell) error {

		pattern := "**"

		switch len(args) {
		case 0:
		case 1:
			pattern = args[0]
		default:
			return &UsageError{Usage: "find [pattern]"}
		}

		fsys, err := s.nav.FS()
		if err != nil {
			return err
		}

		var matches []string
		if err := doublestar.GlobWalk(fsys, pattern, func(p string, d fs.DirEntry) error {
			if p == "." || p == "" {
				return nil
			}
			if d.IsDir() {
				p += "/"
			}
			matches = append(matches, p)
			return nil
		}); err != nil {
			return errors.Wrapf(err, "couldn't match %s", pattern)
		}

		sort.Strings(matches)
		for _, match := range matches {
			fmt.Fprintln(s.Out, match)
		}
		return nil
	}

	s.builtins["help"] = func(args []string, s *Shell) error {
		names := make([]string, 0, len(s.builtins))
		for name := range s.builtins {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(s.Out, strings.Join(names, " "))
		return nil
	}
}
