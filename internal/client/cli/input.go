package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// ErrEmptyInput is returned when the user enters nothing at a prompt.
var ErrEmptyInput = errors.New("empty input")

// Prompter asks questions on w and reads answers from r. It shares r with
// the REPL so a command can read its own follow-up lines.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

func NewPrompter(r *bufio.Reader, w io.Writer) *Prompter {
	return &Prompter{r: r, w: w}
}

// Line prints "label: " and returns the trimmed answer. A last line without
// a trailing newline is accepted; an empty answer is ErrEmptyInput.
func (p *Prompter) Line(label string) (string, error) {
	if _, err := fmt.Fprintf(p.w, "%s: ", label); err != nil {
		return "", err
	}
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrEmptyInput
	}
	return line, nil
}

// Password prints "label: " and reads from the terminal without echo. The
// caller should wipe the returned slice.
func (p *Prompter) Password(label string) ([]byte, error) {
	if _, err := fmt.Fprintf(p.w, "%s: ", label); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.w)
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, ErrEmptyInput
	}
	return pw, nil
}
