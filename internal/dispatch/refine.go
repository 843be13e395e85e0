// internal/dispatch/refine.go
package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/providers"
)

// LintIssues groups the lines of a lint report by keyword class.
type LintIssues struct {
	Errors   []string
	Warnings []string
	Syntax   []string
}

// Empty reports whether no line of the report matched any class.
func (l LintIssues) Empty() bool {
	return len(l.Errors) == 0 && len(l.Warnings) == 0 && len(l.Syntax) == 0
}

// Combined flattens all classified lines, errors first, for the refinement
// prompt.
func (l LintIssues) Combined() string {
	var lines []string
	lines = append(lines, l.Errors...)
	lines = append(lines, l.Warnings...)
	lines = append(lines, l.Syntax...)
	return strings.Join(lines, "\n")
}

// ParseLintReport classifies report lines by substring. These are plain
// keyword tests, not a grammar; a line lands in the first class that matches.
func ParseLintReport(path string) (LintIssues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LintIssues{}, fmt.Errorf("unable to read lint report %s: %w", path, err)
	}

	var issues LintIssues
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "Error"):
			issues.Errors = append(issues.Errors, trimmed)
		case strings.Contains(line, "Warning"):
			issues.Warnings = append(issues.Warnings, trimmed)
		case strings.Contains(line, "Syntax"):
			issues.Syntax = append(issues.Syntax, trimmed)
		}
	}
	return issues, nil
}

// LintReportPath builds the lint report location for a previous run:
// <root>/<protocol>/<model>/<top>_code_0_RAG<True|False>_lint.rpt
func LintReportPath(root, protocol, model, top string, useRAG bool) string {
	filename := fmt.Sprintf("%s_code_0_RAG%s_lint.rpt", top, RAGTag(useRAG))
	return filepath.Join(root, protocol, model, filename)
}

// refineInstruction wraps the accumulated lint output into the single
// refinement prompt.
func refineInstruction(issues LintIssues) string {
	return fmt.Sprintf("Refine the following code to fix these errors:\n\n%s. Correct the entire code. Give full code as the output.", issues.Combined())
}

// Refine performs exactly one extra round-trip: the original prompt and
// answer are replayed as conversation context, followed by the refinement
// instruction carrying the lint output. The returned record holds the single
// refined exchange.
func Refine(ctx context.Context, completer providers.Completer, model string, previous Record, issues LintIssues) (Record, error) {
	if len(previous.Exchanges) == 0 {
		return Record{}, fmt.Errorf("previous response record has no exchanges to refine")
	}

	first := previous.Exchanges[0]
	instruction := refineInstruction(issues)
	conversation := []providers.Message{
		{Role: providers.RoleUser, Content: first.Prompt},
		{Role: providers.RoleAssistant, Content: first.Answer},
		{Role: providers.RoleUser, Content: instruction},
	}

	answer, err := completer.Complete(ctx, model, conversation)
	if err != nil {
		answer = fmt.Sprintf("Error: %v", err)
		logging.LogEvent("Refinement failed for model %s: %v", model, err)
	}

	return Record{Exchanges: []Exchange{{Index: 0, Prompt: instruction, Answer: answer}}}, nil
}
