// internal/metrics/render.go
package metrics

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderSummary formats the grouped summary for the terminal.
func RenderSummary(rows []SummaryRow) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	groupStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Final metrics by LLM x RAG x Protocol"))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(groupStyle.Render(fmt.Sprintf("%s RAG=%s %s:", row.LLM, row.RAG, row.Protocol)))
		sb.WriteString("\n")
		sb.WriteString(valueStyle.Render(fmt.Sprintf(
			"  designs=%d lint=%.1f%% synth=%.1f%% timing=%.1f%% power=%s area=%s",
			row.Total, row.LintRate, row.SynthRate, row.TimingRate,
			formatPower(row), formatArea(row))))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderScores formats the quality ranking for the terminal.
func RenderScores(rows []ScoreRow) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	groupStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("LLM x Protocol quality ranking"))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(groupStyle.Render(fmt.Sprintf("%s %s:", row.LLM, row.Protocol)))
		sb.WriteString("\n")
		sb.WriteString(valueStyle.Render(fmt.Sprintf(
			"  designs=%d with_metrics=%d score=%d/%d (%.1f%%) power=%s area=%s",
			row.Total, row.WithMetrics, row.TotalScore, row.Total*2, row.ScorePct,
			formatScorePower(row), formatScoreArea(row))))
		sb.WriteString("\n")
	}
	return sb.String()
}
