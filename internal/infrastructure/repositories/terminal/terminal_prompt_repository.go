package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

const ttyPath = "/dev/tty"

// PromptRepository talks to the operator through the controlling terminal,
// so prompts work even when stdin and stdout are redirected.
type PromptRepository struct {
	open   func() (*os.File, error)
	output io.Writer
}

var _ repositories.PromptRepository = (*PromptRepository)(nil)

// NewPromptRepository creates a prompter bound to the process' controlling terminal.
func NewPromptRepository() *PromptRepository {
	return &PromptRepository{
		open: func() (*os.File, error) {
			return os.OpenFile(ttyPath, os.O_RDWR, 0)
		},
		output: os.Stderr,
	}
}

// ReadSecret reads a line with echo disabled.
func (it *PromptRepository) ReadSecret(prompt string) (string, error) {
	tty, err := it.openTerminal()
	if err != nil {
		return "", err
	}
	defer tty.Close()

	fd := int(tty.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", repositories.ErrNoTerminal
	}

	_, _ = fmt.Fprint(tty, prompt)
	secret, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(tty)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return string(secret), nil
}

// ReadLine reads a visible line without its line ending.
func (it *PromptRepository) ReadLine(prompt string) (string, error) {
	tty, err := it.openTerminal()
	if err != nil {
		return "", err
	}
	defer tty.Close()

	_, _ = fmt.Fprint(tty, prompt)
	line, err := bufio.NewReader(tty).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("%w: input closed: %w", repositories.ErrNoTerminal, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Printf writes to the terminal, or to standard error when there is none.
func (it *PromptRepository) Printf(format string, args ...any) {
	tty, err := it.open()
	if err != nil {
		_, _ = fmt.Fprintf(it.output, format, args...)
		return
	}
	defer tty.Close()
	_, _ = fmt.Fprintf(tty, format, args...)
}

func (it *PromptRepository) openTerminal() (*os.File, error) {
	tty, err := it.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repositories.ErrNoTerminal, err)
	}
	return tty, nil
}
