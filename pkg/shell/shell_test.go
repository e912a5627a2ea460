package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/Neev4n/emulator-shell-go/internal/testhelper"
	"github.com/Neev4n/emulator-shell-go/internal/vfs"
)

const prompt = "alice@emulator:/$ "

type testShell struct {
	*Shell
	out    *bytes.Buffer
	errOut *bytes.Buffer
	nav    *vfs.Navigator
}

// newTestShell builds a session over docs/, docs/readme and bin/.
func newTestShell(t *testing.T, input string, opts Options) *testShell {
	t.Helper()

	logger, _ := test.NewNullLogger()
	tree, err := vfs.Load(logger, testhelper.MustCreateTar(t,
		testhelper.Dir("docs"),
		testhelper.File("docs/readme"),
		testhelper.Dir("bin"),
	))
	require.NoError(t, err)

	nav := vfs.NewNavigator(tree)
	opts.User = "alice"
	opts.Navigator = nav

	var out, errOut bytes.Buffer
	return &testShell{
		Shell:  New(strings.NewReader(input), &out, &errOut, opts),
		out:    &out,
		errOut: &errOut,
		nav:    nav,
	}
}

func TestShell_Dispatch(t *testing.T) {

	tests := []struct {
		name        string
		lines       []string
		expectedOut string
		expectedErr string
	}{
		{
			name:        "ls at root",
			lines:       []string{"ls"},
			expectedOut: "bin/\ndocs/\n",
		},
		{
			name:        "ls ignores arguments",
			lines:       []string{"ls -la /bin"},
			expectedOut: "bin/\ndocs/\n",
		},
		{
			name:        "navigate into docs",
			lines:       []string{"cd docs", "pwd", "ls"},
			expectedOut: "/docs\nreadme\n",
		},
		{
			name:        "cd into a file",
			lines:       []string{"cd docs", "cd readme", "pwd"},
			expectedOut: "/docs\n",
			expectedErr: "Error: readme is not a directory\n",
		},
		{
			name:        "cd into a missing path",
			lines:       []string{"cd /nonexistent", "pwd"},
			expectedOut: "/\n",
			expectedErr: "Error: Path /nonexistent does not exist\n",
		},
		{
			name:        "cd without argument",
			lines:       []string{"cd", "pwd"},
			expectedOut: "Usage: cd <directory>\n/\n",
		},
		{
			name:        "cd ignores extra arguments",
			lines:       []string{"cd docs bin", "pwd"},
			expectedOut: "/docs\n",
		},
		{
			name:        "round trip through parent",
			lines:       []string{"cd docs", "cd ..", "pwd"},
			expectedOut: "/\n",
		},
		{
			name:        "repeated pwd and ls are identical",
			lines:       []string{"pwd", "pwd", "ls", "ls"},
			expectedOut: "/\n/\nbin/\ndocs/\nbin/\ndocs/\n",
		},
		{
			name:        "echo joins with single spaces",
			lines:       []string{"echo hello    world"},
			expectedOut: "hello world\n",
		},
		{
			name:        "echo without words",
			lines:       []string{"echo"},
			expectedOut: "\n",
		},
		{
			name:        "echo does not expand",
			lines:       []string{`echo "$HOME" ~`},
			expectedOut: "\"$HOME\" ~\n",
		},
		{
			name:        "who",
			lines:       []string{"who"},
			expectedOut: "alice\n",
		},
		{
			name:        "unknown command",
			lines:       []string{"frobnicate --now"},
			expectedOut: "Unknown command: frobnicate --now\n",
		},
		{
			name:        "keyword must match exactly",
			lines:       []string{"cdx docs", "pwd"},
			expectedOut: "Unknown command: cdx docs\n/\n",
		},
		{
			name:        "find everything",
			lines:       []string{"find"},
			expectedOut: "bin/\ndocs/\ndocs/readme\n",
		},
		{
			name:        "find relative to current directory",
			lines:       []string{"cd docs", "find read*"},
			expectedOut: "readme\n",
		},
		{
			name:        "find with too many patterns",
			lines:       []string{"find a b"},
			expectedOut: "Usage: find [pattern]\n",
		},
		{
			name:        "help",
			lines:       []string{"help"},
			expectedOut: "cd echo exit find help ls pwd who\n",
		},
		{
			name:  "blank line",
			lines: []string{""},
		},
	}

	for _, tt := range tests {

		t.Run(tt.name, func(t *testing.T) {
			s := newTestShell(t, "", Options{})

			for _, line := range tt.lines {
				require.NoError(t, s.Dispatch(line))
			}

			require.Equal(t, tt.expectedOut, s.out.String())
			require.Equal(t, tt.expectedErr, s.errOut.String())
		})

	}

}

func TestShell_Dispatch_exit(t *testing.T) {
	s := newTestShell(t, "", Options{})

	err := s.Dispatch("exit")
	require.ErrorIs(t, err, ErrExit)
	require.Equal(t, "Goodbye!\n", s.out.String())
	require.Empty(t, s.errOut.String())
}

func TestShell_Dispatch_recoversPanics(t *testing.T) {
	s := newTestShell(t, "", Options{})
	s.builtins["boom"] = func(args []string, s *Shell) error {
		panic("kaboom")
	}

	require.NoError(t, s.Dispatch("boom"))
	require.NoError(t, s.Dispatch("pwd"))

	require.Equal(t, "/\n", s.out.String())
	require.Equal(t, "Error: kaboom\n", s.errOut.String())
}

func TestShell_Dispatch_logsCommands(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s := newTestShell(t, "", Options{Logger: logger})
	require.NoError(t, s.Dispatch("cd docs"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, "dispatching command", entry.Message)
	require.Equal(t, "cd", entry.Data["command"])
	require.Equal(t, 1, entry.Data["args"])
}

func TestShell_Run_interactive(t *testing.T) {
	s := newTestShell(t, "pwd\ncd docs\npwd\nexit\nls\n", Options{})

	require.NoError(t, s.Run(context.Background(), ""))

	require.Equal(t,
		prompt+"/\n"+
			prompt+
			"alice@emulator:/docs$ /docs\n"+
			"alice@emulator:/docs$ Goodbye!\n",
		s.out.String())
	require.Equal(t, StateTerminated, s.State())
}

func TestShell_Run_endOfInput(t *testing.T) {

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no input", input: "", expected: prompt + "\n"},
		{name: "trailing newline", input: "pwd\n", expected: prompt + "/\n" + prompt + "\n"},
		{name: "unterminated last line", input: "pwd", expected: prompt + "/\n"},
		{name: "blank and comment lines", input: "\n  \n# note\npwd\n", expected: strings.Repeat(prompt, 4) + "/\n" + prompt + "\n"},
	}

	for _, tt := range tests {

		t.Run(tt.name, func(t *testing.T) {
			s := newTestShell(t, tt.input, Options{})

			require.NoError(t, s.Run(context.Background(), ""))
			require.Equal(t, tt.expected, s.out.String())
			require.Equal(t, StateTerminated, s.State())
		})

	}

}

func TestShell_Run_script(t *testing.T) {
	scripts := fstest.MapFS{
		"boot.sh": {Data: []byte("# setup\n\n  cd docs  \nls\n")},
		"exit.sh": {Data: []byte("echo hi\nexit\necho never\n")},
	}

	t.Run("falls through to interactive input", func(t *testing.T) {
		s := newTestShell(t, "pwd\nexit\n", Options{Opener: &FSOpener{FS: scripts}})

		require.NoError(t, s.Run(context.Background(), "boot.sh"))

		require.Equal(t,
			prompt+"cd docs\n"+
				"alice@emulator:/docs$ ls\n"+
				"readme\n"+
				"alice@emulator:/docs$ /docs\n"+
				"alice@emulator:/docs$ Goodbye!\n",
			s.out.String())
		require.Empty(t, s.errOut.String())
	})

	t.Run("exit ends the session", func(t *testing.T) {
		s := newTestShell(t, "pwd\n", Options{Opener: &FSOpener{FS: scripts}})

		require.NoError(t, s.Run(context.Background(), "exit.sh"))

		require.Equal(t,
			prompt+"echo hi\n"+
				"hi\n"+
				prompt+"exit\n"+
				"Goodbye!\n",
			s.out.String())
	})

	t.Run("missing script", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		s := newTestShell(t, "pwd\nexit\n", Options{Opener: &FSOpener{FS: scripts}, Logger: logger})

		require.NoError(t, s.Run(context.Background(), "missing.sh"))

		require.Equal(t, "Error: Script file 'missing.sh' not found.\n", s.errOut.String())
		require.Equal(t, prompt+"/\n"+prompt+"Goodbye!\n", s.out.String())
		require.Equal(t, "falling back to interactive input", hook.LastEntry().Message)
	})

	t.Run("unreadable script", func(t *testing.T) {
		s := newTestShell(t, "exit\n", Options{Opener: failingOpener{err: errors.New("permission denied")}})

		require.NoError(t, s.Run(context.Background(), "locked.sh"))

		require.Equal(t, "Error: couldn't open script locked.sh: permission denied\n", s.errOut.String())
		require.Equal(t, prompt+"Goodbye!\n", s.out.String())
	})

	t.Run("script on disk", func(t *testing.T) {
		script := testhelper.MustWriteFile(t, "boot.sh", strings.NewReader("who\n"))
		s := newTestShell(t, "", Options{})

		require.NoError(t, s.Run(context.Background(), script))

		require.Equal(t, prompt+"who\nalice\n"+prompt+"\n", s.out.String())
	})
}

func TestShell_Run_twice(t *testing.T) {
	s := newTestShell(t, "", Options{})

	require.NoError(t, s.Run(context.Background(), ""))
	require.EqualError(t, s.Run(context.Background(), ""), "session is already terminated")
}

func TestShell_Run_canceled(t *testing.T) {
	s := newTestShell(t, "pwd\n", Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Run(ctx, ""), context.Canceled)
	require.Empty(t, s.out.String())
	require.Equal(t, StateTerminated, s.State())
}

func TestPrompt_Render(t *testing.T) {
	require.Equal(t, "alice@emulator:/docs$ ", Prompt{User: "alice"}.Render("/docs"))

	styled := Prompt{User: "alice", Styled: true}.Render("/docs")
	require.Contains(t, styled, "alice")
	require.Contains(t, styled, "/docs")
	require.True(t, strings.HasSuffix(styled, "$ "))
}

func TestStyledOutput(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, file.Close()) })

	t.Setenv("NO_COLOR", "")
	require.False(t, StyledOutput(file), "a regular file is not a terminal")

	t.Setenv("NO_COLOR", "1")
	require.False(t, StyledOutput(file))
}

type failingOpener struct {
	err error
}

func (o failingOpener) OpenRead(string) (io.ReadCloser, error) {
	return nil, o.err
}
