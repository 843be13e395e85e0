// internal/metrics/summary.go
package metrics

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// SummaryRow is one (LLM, RAG, Protocol) group of the final metric table.
type SummaryRow struct {
	LLM        string
	RAG        string
	Protocol   string
	Total      int
	LintRate   float64
	SynthRate  float64
	TimingRate float64
	AvgPower   float64
	HasPower   bool
	AvgArea    float64
	HasArea    bool
}

// Summarize groups records by (LLM, RAG, Protocol). Pass rates treat a lint
// warning as passing; power and area averages skip unparseable values.
func Summarize(records []FileMetrics) []SummaryRow {
	type bucket struct {
		total      int
		lintPass   int
		synthPass  int
		timingPass int
		powerSum   float64
		powerN     int
		areaSum    float64
		areaN      int
	}

	type key struct{ llm, rag, protocol string }
	buckets := make(map[key]*bucket)

	for _, r := range records {
		k := key{llm: r.LLM, rag: r.RAG, protocol: r.Protocol}
		b := buckets[k]
		if b == nil {
			b = &bucket{}
			buckets[k] = b
		}
		b.total++
		if r.Lint == Pass || r.Lint == Warn {
			b.lintPass++
		}
		if r.Synth == Pass {
			b.synthPass++
		}
		if r.Timing == Pass {
			b.timingPass++
		}
		if v, err := strconv.ParseFloat(r.Power, 64); err == nil {
			b.powerSum += v
			b.powerN++
		}
		if v, err := strconv.ParseFloat(r.Area, 64); err == nil {
			b.areaSum += v
			b.areaN++
		}
	}

	rows := make([]SummaryRow, 0, len(buckets))
	for k, b := range buckets {
		row := SummaryRow{
			LLM:        k.llm,
			RAG:        k.rag,
			Protocol:   k.protocol,
			Total:      b.total,
			LintRate:   rate(b.lintPass, b.total),
			SynthRate:  rate(b.synthPass, b.total),
			TimingRate: rate(b.timingPass, b.total),
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
		if a.LLM != b.LLM {
			return a.LLM < b.LLM
		}
		if a.RAG != b.RAG {
			return a.RAG < b.RAG
		}
		return a.Protocol < b.Protocol
	})
	return rows
}

// rate converts a pass count into a percentage rounded to one decimal.
func rate(pass, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(pass)/float64(total)*1000) / 10
}

func formatPower(row SummaryRow) string {
	if !row.HasPower {
		return Unknown
	}
	return fmt.Sprintf("%.2e", row.AvgPower)
}

func formatArea(row SummaryRow) string {
	if !row.HasArea {
		return Unknown
	}
	return strconv.Itoa(int(row.AvgArea))
}

// WriteSummaryCSV writes the grouped table as comma-separated values.
func WriteSummaryCSV(path string, rows []SummaryRow) error {
	var sb strings.Builder
	sb.WriteString("LLM,RAG,Protocol,Total_Designs,Lint_Pass_Rate,Synth_Pass_Rate,Timing_Pass_Rate,Avg_Power,Avg_Area\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%d,%.1f,%.1f,%.1f,%s,%s\n",
			row.LLM, row.RAG, row.Protocol, row.Total,
			row.LintRate, row.SynthRate, row.TimingRate,
			formatPower(row), formatArea(row)))
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// WriteSummaryMarkdown writes the grouped table as a GitHub-flavored table.
func WriteSummaryMarkdown(path string, rows []SummaryRow) error {
	var sb strings.Builder
	sb.WriteString("## 📊 Final Metric Table by LLM × RAG × Protocol\n\n")
	sb.WriteString("| LLM | RAG | Protocol | Total | Lint Pass (%) | Synth Pass (%) | Timing Pass (%) | Avg Power (W) | Avg Area (µm²) |\n")
	sb.WriteString("|-----|-----|----------|--------|----------------|------------------|-------------------|----------------|-----------------|\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %.1f%% | %.1f%% | %.1f%% | %s | %s |\n",
			row.LLM, row.RAG, row.Protocol, row.Total,
			row.LintRate, row.SynthRate, row.TimingRate,
			formatPower(row), formatArea(row)))
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
