// internal/metrics/scores.go
package metrics

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Score awards one point each for a clean lint and a clean synthesis.
func Score(m FileMetrics) int {
	score := 0
	if m.Lint == Pass {
		score++
	}
	if m.Synth == Pass {
		score++
	}
	return score
}

// ScoreRow is one (LLM, Protocol) group of the quality summary.
type ScoreRow struct {
	LLM         string
	Protocol    string
	Total       int
	WithMetrics int
	TotalScore  int
	ScorePct    float64
	AvgPower    float64
	HasPower    bool
	AvgArea     float64
	HasArea     bool
}

// Scores groups records by (LLM, Protocol) and ranks groups by score
// percentage. WithMetrics counts designs whose power figure parsed, which
// tracks how many actually made it through the tool flow.
func Scores(records []FileMetrics) []ScoreRow {
	type bucket struct {
		total    int
		withM    int
		score    int
		powerSum float64
		powerN   int
		areaSum  float64
		areaN    int
	}

	type key struct{ llm, protocol string }
	buckets := make(map[key]*bucket)

	for _, r := range records {
		k := key{llm: r.LLM, protocol: r.Protocol}
		b := buckets[k]
		if b == nil {
			b = &bucket{}
			buckets[k] = b
		}
		b.total++
		b.score += Score(r)
		if v, err := strconv.ParseFloat(r.Power, 64); err == nil {
			b.withM++
			b.powerSum += v
			b.powerN++
		}
		if v, err := strconv.ParseFloat(r.Area, 64); err == nil {
			b.areaSum += v
			b.areaN++
		}
	}

	rows := make([]ScoreRow, 0, len(buckets))
	for k, b := range buckets {
		row := ScoreRow{
			LLM:         k.llm,
			Protocol:    k.protocol,
			Total:       b.total,
			WithMetrics: b.withM,
			TotalScore:  b.score,
		}
		if maxScore := b.total * 2; maxScore > 0 {
			row.ScorePct = float64(b.score) / float64(maxScore) * 100
		}
		if b.powerN > 0 {
			row.AvgPower = b.powerSum / float64(b.powerN)
			row.HasPower = true
		}
		if b.areaN > 0 {
			row.AvgArea = b.areaSum / float64(b.areaN)
			row.HasArea = true
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ScorePct != b.ScorePct {
			return a.ScorePct > b.ScorePct
		}
		if a.LLM != b.LLM {
			return a.LLM < b.LLM
		}
		return a.Protocol < b.Protocol
	})
	return rows
}

func formatScorePower(row ScoreRow) string {
	if !row.HasPower {
		return Unknown
	}
	return fmt.Sprintf("%.2e", row.AvgPower)
}

func formatScoreArea(row ScoreRow) string {
	if !row.HasArea {
		return Unknown
	}
	return strconv.Itoa(int(row.AvgArea))
}

// WriteScoresCSV writes the quality summary as comma-separated values.
func WriteScoresCSV(path string, rows []ScoreRow) error {
	var sb strings.Builder
	sb.WriteString("LLM,Protocol,Total_Designs,Designs_with_Metrics,Total_Score,Max_Score,Score_%,Avg_Power,Avg_Area\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%d,%d,%.1f,%s,%s\n",
			row.LLM, row.Protocol, row.Total, row.WithMetrics,
			row.TotalScore, row.Total*2, row.ScorePct,
			formatScorePower(row), formatScoreArea(row)))
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// WriteScoresMarkdown writes the quality summary as a GitHub-flavored table.
func WriteScoresMarkdown(path string, rows []ScoreRow) error {
	var sb strings.Builder
	sb.WriteString("## 📊 LLM × Protocol Quality Summary\n\n")
	sb.WriteString("| LLM | Protocol | Total Designs | Score | Score % | Avg Power (W) | Avg Area (µm²) |\n")
	sb.WriteString("|-----|----------|----------------|--------|----------|----------------|-----------------|\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %.1f%% | %s | %s |\n",
			row.LLM, row.Protocol, row.Total, row.TotalScore, row.ScorePct,
			formatScorePower(row), formatScoreArea(row)))
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

var fileTableColumns = []string{"File", "Protocol", "LLM", "Lint", "Synthesis", "Timing", "Power (W)", "Area (µm²)"}

func fileTableCells(m FileMetrics) []string {
	return []string{m.File, m.Protocol, m.LLM, m.Lint, m.Synth, m.Timing, m.Power, m.Area}
}

// WriteFileTable writes the per-design table as aligned plain text. Records
// are expected in CollectRecords order.
func WriteFileTable(path string, records []FileMetrics) error {
	widths := make([]int, len(fileTableColumns))
	for i, col := range fileTableColumns {
		widths[i] = len([]rune(col))
	}
	for _, r := range records {
		for i, cell := range fileTableCells(r) {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = pad(cell, widths[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		sb.WriteString("\n")
	}

	writeRow(fileTableColumns)
	for _, r := range records {
		writeRow(fileTableCells(r))
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// WriteFileTableMarkdown writes the per-design table as a GitHub-flavored
// table.
func WriteFileTableMarkdown(path string, records []FileMetrics) error {
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(fileTableColumns, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(fileTableColumns)) + "\n")
	for _, r := range records {
		sb.WriteString("| " + strings.Join(fileTableCells(r), " | ") + " |\n")
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
