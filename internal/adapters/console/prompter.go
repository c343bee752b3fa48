// Package console reads interactive input from the controlling terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/maasutil/maascli/internal/ports"
)

// Prompter prompts on stderr and reads from stdin. Password reads go
// through the terminal without echo when stdin is a TTY; otherwise they
// fall back to a plain line read so piped input still works.
type Prompter struct {
	in  *os.File
	out io.Writer
}

var _ ports.Prompter = (*Prompter)(nil)

func New() *Prompter {
	return &Prompter{in: os.Stdin, out: os.Stderr}
}

func (p *Prompter) Password(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	if isatty.IsTerminal(p.in.Fd()) {
		raw, err := term.ReadPassword(int(p.in.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	return p.readLine()
}

func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.readLine()
}

func (p *Prompter) readLine() (string, error) {
	scanner := bufio.NewScanner(p.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}
