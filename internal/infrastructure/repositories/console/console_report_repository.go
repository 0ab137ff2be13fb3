package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

type detail int

const (
	detailCount detail = iota
	detailPaths
	detailReports
	detailChanges
)

type section struct {
	label  string
	detail detail
	style  lipgloss.Style
}

// ReportRepository prints the grouped results of a run once every clone is finished.
type ReportRepository struct {
	output   io.Writer
	sections map[entities.Outcome]section
	path     lipgloss.Style
	report   lipgloss.Style
}

var _ repositories.ReportRepository = (*ReportRepository)(nil)

func NewReportRepository() *ReportRepository {
	return NewReportRepositoryTo(os.Stdout)
}

// NewReportRepositoryTo creates a reporter writing to output, styled for whatever output supports.
func NewReportRepositoryTo(output io.Writer) *ReportRepository {
	renderer := lipgloss.NewRenderer(output)
	quiet := renderer.NewStyle().Faint(true)
	warning := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	failure := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	success := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	return &ReportRepository{
		output: output,
		sections: map[entities.Outcome]section{
			entities.OutcomeNotARepository:          {"Not a repo", detailPaths, quiet},
			entities.OutcomeNoRemote:                {"No remote", detailPaths, quiet},
			entities.OutcomeAmbiguousRemote:         {"No clear remote origin", detailReports, warning},
			entities.OutcomeBareRepository:          {"Bare repo, skipped", detailCount, quiet},
			entities.OutcomeRemoteHeadMismatch:      {"Remote head mismatch", detailPaths, warning},
			entities.OutcomeUpToDate:                {"Up to date", detailCount, quiet},
			entities.OutcomeMergeAnalysisFailed:     {"Failed merge analysis", detailCount, failure},
			entities.OutcomeMergeConflictReverted:   {"Reverted conflict", detailReports, warning},
			entities.OutcomeMergeConflictUnresolved: {"Unresolved conflict", detailReports, failure},
			entities.OutcomeDirtyWorkingTree:        {"Dirty, skipped", detailReports, warning},
			entities.OutcomeFetchFailed:             {"Couldn't fetch", detailReports, failure},
			entities.OutcomeNeedsResolution:         {"Needs resolution", detailReports, warning},
			entities.OutcomeOther:                   {"Other error", detailReports, failure},
			entities.OutcomeUpdated:                 {"Updated", detailChanges, success},
		},
		path:   renderer.NewStyle().Bold(true),
		report: renderer.NewStyle().Faint(true),
	}
}

func (it *ReportRepository) Present(upgits []entities.Upgit) error {
	var builder strings.Builder
	builder.WriteString("\n")

	groups := entities.GroupUpgits(upgits)
	for _, outcome := range entities.ReportOrder {
		group, ok := groups[outcome]
		if !ok {
			continue
		}
		it.writeSection(&builder, it.sections[outcome], group)
	}

	if _, err := io.WriteString(it.output, builder.String()); err != nil {
		return fmt.Errorf("failed to write the report: %w", err)
	}
	return nil
}

func (it *ReportRepository) writeSection(builder *strings.Builder, section section, group []entities.Upgit) {
	title := section.style.Render(fmt.Sprintf("%s (%d)", section.label, len(group)))
	if section.detail == detailCount {
		builder.WriteString(title + "\n")
		return
	}

	builder.WriteString(title + ":\n")
	for _, upgit := range group {
		switch section.detail {
		case detailPaths:
			builder.WriteString("  " + it.path.Render(upgit.Path) + "\n")
		case detailReports:
			builder.WriteString("  " + it.path.Render(upgit.Path) + "\n")
			builder.WriteString(indent(it.report.Render(upgit.Report), "    ") + "\n")
		case detailChanges:
			builder.WriteString(it.path.Render(upgit.Path) + ":\n")
			builder.WriteString(upgit.Report + "\n\n")
		case detailCount:
		}
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
