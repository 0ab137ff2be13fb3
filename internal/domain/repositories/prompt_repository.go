package repositories

import "errors"

// ErrNoTerminal is returned when input is needed but there is no terminal to read it from.
var ErrNoTerminal = errors.New("no terminal available for interactive input")

// PromptRepository reads answers from the operator.
type PromptRepository interface {
	// ReadSecret shows prompt and reads a line without echoing it.
	ReadSecret(prompt string) (string, error)
	// ReadLine shows prompt and reads a visible line.
	ReadLine(prompt string) (string, error)
	Printf(format string, args ...any)
}
