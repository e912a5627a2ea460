package shell

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptUserStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34")) // Green
	promptPathStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")) // Blue
)

// Prompt renders "<user>@emulator:<cwd>$ ".
type Prompt struct {
	User   string
	Styled bool
}

func (p Prompt) Render(cwd string) string {
	user, path := p.User, cwd
	if p.Styled {
		user = promptUserStyle.Render(user)
		path = promptPathStyle.Render(path)
	}
	return fmt.Sprintf("%s@emulator:%s$ ", user, path)
}

// StyledOutput reports whether prompts written to f should be colored: f must
// be a terminal and NO_COLOR must be unset.
func StyledOutput(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
