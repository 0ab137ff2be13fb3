package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

const progressWidth = 40

// ProgressRepository redraws a single progress line on standard error.
// Callers serialize Render against prompts, so the bar never interleaves with one.
type ProgressRepository struct {
	output io.Writer
	bar    progress.Model
	drawn  bool
}

var _ repositories.ProgressRepository = (*ProgressRepository)(nil)

func NewProgressRepository() *ProgressRepository {
	return NewProgressRepositoryTo(os.Stderr)
}

func NewProgressRepositoryTo(output io.Writer) *ProgressRepository {
	return &ProgressRepository{
		output: output,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth)),
	}
}

func (it *ProgressRepository) Render(done, total int) {
	if total <= 0 {
		return
	}
	_, _ = fmt.Fprintf(it.output, "\r%s %d/%d", it.bar.ViewAs(float64(done)/float64(total)), done, total)
	it.drawn = true
}

func (it *ProgressRepository) Finish() {
	if !it.drawn {
		return
	}
	_, _ = fmt.Fprintln(it.output)
	it.drawn = false
}
