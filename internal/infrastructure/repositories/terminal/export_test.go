package terminal

import (
	"io"
	"os"
)

// NewPromptRepositoryWithTerminal creates a prompter that opens its terminal with open.
func NewPromptRepositoryWithTerminal(open func() (*os.File, error), output io.Writer) *PromptRepository {
	return &PromptRepository{open: open, output: output}
}
