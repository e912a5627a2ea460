package shell

import (
	"io"
	"strings"
	"unicode"
)

// DefaultParser splits a line on whitespace. Quotes and backslashes are
// ordinary characters and nothing is expanded.
type DefaultParser struct {
	newReader  func(string) io.RuneReader
	newBuilder func() *strings.Builder
}

func NewDefaultParser() *DefaultParser {
	d := &DefaultParser{
		newReader: func(s string) io.RuneReader {
			return strings.NewReader(s)
		},
		newBuilder: func() *strings.Builder {
			return &strings.Builder{}
		},
	}

	return d
}

type tokenBuffer struct {
	builder *strings.Builder
}

func (tokenBuffer *tokenBuffer) flushIfNotEmpty(args []string) []string {
	if tokenBuffer.builder.Len() > 0 {
		args = append(args, tokenBuffer.builder.String())
		tokenBuffer.builder.Reset()
	}

	return args
}

func (p *DefaultParser) Parse(line string) ([]string, error) {
	runeReader := p.newReader(line)
	tokenBuffer := &tokenBuffer{builder: p.newBuilder()}

	args := []string{}

	for {
		ch, _, err := runeReader.ReadRune()

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		if unicode.IsSpace(ch) {
			args = tokenBuffer.flushIfNotEmpty(args)
			continue
		}

		tokenBuffer.builder.WriteRune(ch)
	}

	args = tokenBuffer.flushIfNotEmpty(args)

	return args, nil

}

// isComment reports whether a trimmed line carries no command.
func isComment(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}
