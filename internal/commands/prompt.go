package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks yes/no questions on a terminal. On a real terminal a single
// key press answers, otherwise a full line is read.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
	suffix string
	fd     int
	raw    bool
}

// NewPrompter creates a prompter reading answers from reader. When in is a
// terminal, answers are read in raw mode. suffix is appended to every
// question, e.g. " (j/N): ".
func NewPrompter(in *os.File, reader *bufio.Reader, out io.Writer, suffix string) *Prompter {
	p := &Prompter{reader: reader, out: out, suffix: suffix, fd: -1}
	if in != nil && term.IsTerminal(int(in.Fd())) {
		p.fd = int(in.Fd())
		p.raw = true
	}
	return p
}

// Confirm prints prompt and blocks until the user answers.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprint(p.out, prompt+p.suffix)

	if p.raw {
		if ok, err := p.readKey(); err == nil {
			return ok, nil
		}
		// Fall back to line input if raw mode is unavailable
	}
	return p.readLine()
}

func (p *Prompter) readKey() (bool, error) {
	oldState, err := term.MakeRaw(p.fd)
	if err != nil {
		return false, err
	}
	defer func() {
		if err := term.Restore(p.fd, oldState); err != nil {
			fmt.Fprintf(os.Stderr, "Error restoring terminal: %v\n", err)
		}
	}()

	char, _, err := p.reader.ReadRune()
	// Raw mode does not translate newlines
	fmt.Fprint(p.out, "\r\n")
	if err != nil {
		return false, nil
	}

	switch char {
	case 'y', 'Y', 'j', 'J':
		return true, nil
	default: // includes Ctrl+C (3) and Enter
		return false, nil
	}
}

func (p *Prompter) readLine() (bool, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	return isYes(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "j", "ja":
		return true
	default:
		return false
	}
}
