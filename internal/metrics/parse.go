// internal/metrics/parse.go
// Package metrics parses the synthesis tooling's metrics files and aggregates
// them into run-level summary tables.
package metrics

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Verdict symbols used across all tables.
const (
	Pass    = "✓"
	Warn    = "⚠"
	Fail    = "✗"
	Unknown = "N/A"
)

var (
	powerPattern = regexp.MustCompile(`([0-9]+\.[0-9]+e[-+][0-9]+)`)
	areaPattern  = regexp.MustCompile(`([0-9]+)\s*µm²`)
)

// FileMetrics is the parsed verdict set for one synthesized design.
type FileMetrics struct {
	File     string
	Protocol string
	LLM      string
	RAG      string
	Lint     string
	Synth    string
	Timing   string
	Power    string
	Area     string
}

// ParseMetricsFile reads a single metrics file. A missing file still yields a
// row so absent designs show up as N/A everywhere.
func ParseMetricsFile(path, protocol, llm string) FileMetrics {
	m := FileMetrics{
		File:     strings.TrimSuffix(filepath.Base(path), "_metrics.txt"),
		Protocol: protocol,
		LLM:      llm,
		RAG:      "Unknown",
		Lint:     Unknown,
		Synth:    Unknown,
		Timing:   Unknown,
		Power:    Unknown,
		Area:     Unknown,
	}

	switch {
	case strings.Contains(m.File, "RAGTrue"):
		m.RAG = "True"
	case strings.Contains(m.File, "RAGFalse"):
		m.RAG = "False"
	}

	file, err := os.Open(path)
	if err != nil {
		return m
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.Contains(line, "No lint errors"):
			m.Lint = Pass
		case strings.Contains(line, "Lint warnings found"):
			m.Lint = Warn
		case strings.Contains(line, "Verilator") && strings.Contains(line, "ERROR"):
			m.Lint = Fail
		}

		switch {
		case strings.Contains(line, "No synthesis errors"):
			m.Synth = Pass
		case strings.Contains(line, "Synthesis errors found"):
			m.Synth = Fail
		}

		switch {
		case strings.Contains(line, "Timing Met: YES"):
			m.Timing = Pass
		case strings.Contains(line, "Timing Met: NO"), strings.Contains(line, "Timing Not Met"):
			m.Timing = Fail
		}

		if strings.Contains(line, "Total Power") {
			if match := powerPattern.FindStringSubmatch(line); match != nil {
				m.Power = match[1]
			}
		}
		if strings.Contains(line, "Chip Area") {
			if match := areaPattern.FindStringSubmatch(line); match != nil {
				m.Area = match[1]
			}
		}
	}

	return m
}

// CollectRecords walks the reports root and parses every metrics file. The
// protocol and LLM are read off the directory layout
// <root>/<protocol>/<llm>/<file>_metrics.txt.
func CollectRecords(reportRoot string) ([]FileMetrics, error) {
	var records []FileMetrics
	err := filepath.WalkDir(reportRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), "_metrics.txt") {
			return nil
		}

		protocol, llm := "unknown", "unknown"
		parts := strings.Split(filepath.ToSlash(filepath.Clean(filepath.Dir(path))), "/")
		if len(parts) >= 2 {
			protocol = parts[len(parts)-2]
			llm = parts[len(parts)-1]
		}

		records = append(records, ParseMetricsFile(path, protocol, llm))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Protocol != b.Protocol {
			return a.Protocol < b.Protocol
		}
		if a.LLM != b.LLM {
			return a.LLM < b.LLM
		}
		return a.File < b.File
	})
	return records, nil
}
