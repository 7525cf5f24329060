package lifecycle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter obtains operator input. Implementations block until a line is
// available; there is no timeout.
type Prompter interface {
	// Confirm asks a yes/no question and reports whether the answer was affirmative.
	Confirm(question string) (bool, error)
	// Ask prints question and returns the trimmed answer line.
	Ask(question string) (string, error)
}

// LinePrompter reads answers line by line from a reader.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter returns a Prompter reading from r and printing questions to w.
func NewPrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Ask prints question and reads one line. A final line without a trailing
// newline is still returned; io.EOF is returned only when no input remains.
func (p *LinePrompter) Ask(question string) (string, error) {
	fmt.Fprint(p.w, question)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm accepts "y" or "yes" in any case. End of input counts as "no".
func (p *LinePrompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.w)
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
