package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"exprune/internal/prune"
)

// TerminalPrompter asks the operator for confirmation on the terminal.
// It blocks indefinitely waiting for an answer line; there is no timeout.
type TerminalPrompter struct {
	in     io.Reader
	out    io.Writer
	logger prune.Logger
}

// NewTerminalPrompter creates a prompter over the given streams.
func NewTerminalPrompter(in io.Reader, out io.Writer, logger prune.Logger) *TerminalPrompter {
	return &TerminalPrompter{in: in, out: out, logger: logger}
}

// Confirm prints the question and reads one answer line. Only a
// case-insensitive "yes" confirms; anything else, including end of input,
// declines.
func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	if f, ok := p.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		p.logger.Warn("stdin is not a terminal, reading confirmation from piped input")
	}

	fmt.Fprintln(p.out, question)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			// End of input counts as "no".
			return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
		}
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
}

// Compile-time check that TerminalPrompter implements prune.Prompter
var _ prune.Prompter = (*TerminalPrompter)(nil)
