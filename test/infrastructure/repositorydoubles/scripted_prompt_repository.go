//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// ScriptedPromptRepository implements repositories.PromptRepository by replaying
// Answers in order, whichever method asks. Once the script runs out it behaves
// like a process without a terminal.
type ScriptedPromptRepository struct {
	// --- ReadSecret / ReadLine ---
	Answers []string
	// spy: prompts shown, in order
	Prompts []string

	// --- Printf ---
	Printed []string
}

var _ repositories.PromptRepository = (*ScriptedPromptRepository)(nil)

// NewScriptedPromptRepository creates a prompter that answers with the given lines.
func NewScriptedPromptRepository(answers ...string) *ScriptedPromptRepository {
	return &ScriptedPromptRepository{Answers: answers}
}

func (p *ScriptedPromptRepository) ReadSecret(prompt string) (string, error) {
	return p.next(prompt)
}

func (p *ScriptedPromptRepository) ReadLine(prompt string) (string, error) {
	return p.next(prompt)
}

func (p *ScriptedPromptRepository) Printf(format string, args ...any) {
	p.Printed = append(p.Printed, fmt.Sprintf(format, args...))
}

// Remaining is the number of answers not consumed yet.
func (p *ScriptedPromptRepository) Remaining() int {
	return len(p.Answers)
}

func (p *ScriptedPromptRepository) next(prompt string) (string, error) {
	p.Prompts = append(p.Prompts, prompt)
	if len(p.Answers) == 0 {
		return "", repositories.ErrNoTerminal
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}
