// internal/dispatch/refine_test.go
package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/svbench/internal/providers"
)

func TestParseLintReport(t *testing.T) {
	report := strings.Join([]string{
		"%Error: top.sv:12: expecting ';'",
		"  %Warning-WIDTH: top.sv:20: operator ASSIGN",
		"%Error-Syntax: unexpected token",
		"clean line",
		"",
	}, "\n")
	path := filepath.Join(t.TempDir(), "I2C_driver_code_0_RAGFalse_lint.rpt")
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		t.Fatal(err)
	}

	issues, err := ParseLintReport(path)
	if err != nil {
		t.Fatalf("ParseLintReport failed: %v", err)
	}
	// Error outranks the other classes when a line matches more than one.
	if len(issues.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(issues.Errors), issues.Errors)
	}
	if len(issues.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(issues.Warnings), issues.Warnings)
	}
	if len(issues.Syntax) != 0 {
		t.Fatalf("expected 0 syntax lines, got %v", issues.Syntax)
	}
	if issues.Warnings[0] != "%Warning-WIDTH: top.sv:20: operator ASSIGN" {
		t.Fatalf("warning not trimmed: %q", issues.Warnings[0])
	}
}

func TestParseLintReportMissingFile(t *testing.T) {
	if _, err := ParseLintReport(filepath.Join(t.TempDir(), "absent.rpt")); err == nil {
		t.Fatalf("expected error for missing report")
	}
}

func TestLintIssuesEmptyAndCombined(t *testing.T) {
	var issues LintIssues
	if !issues.Empty() {
		t.Fatalf("zero value should be empty")
	}

	issues.Errors = []string{"e1"}
	issues.Warnings = []string{"w1"}
	issues.Syntax = []string{"s1"}
	if issues.Empty() {
		t.Fatalf("populated issues reported empty")
	}
	if got := issues.Combined(); got != "e1\nw1\ns1" {
		t.Fatalf("Combined = %q", got)
	}
}

func TestLintReportPath(t *testing.T) {
	got := LintReportPath("reports", "i2c", "gpt-4.1", "I2C_driver", false)
	want := filepath.Join("reports", "i2c", "gpt-4.1", "I2C_driver_code_0_RAGFalse_lint.rpt")
	if got != want {
		t.Fatalf("LintReportPath = %q, want %q", got, want)
	}
}

// TestRefineConversation checks the replayed conversation: original prompt,
// original answer, then the refinement instruction with the lint output.
func TestRefineConversation(t *testing.T) {
	completer := &fakeCompleter{answers: []string{"module fixed(); endmodule"}}
	previous := Record{Exchanges: []Exchange{{Index: 0, Prompt: "write the driver", Answer: "module broken(); endmodule"}}}
	issues := LintIssues{Errors: []string{"%Error: missing port"}}

	record, err := Refine(context.Background(), completer, "gpt-4.1", previous, issues)
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if len(completer.conversations) != 1 {
		t.Fatalf("expected 1 call, got %d", len(completer.conversations))
	}
	conv := completer.conversations[0]
	if len(conv) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv))
	}
	if conv[0].Role != providers.RoleUser || conv[0].Content != "write the driver" {
		t.Fatalf("unexpected first message %+v", conv[0])
	}
	if conv[1].Role != providers.RoleAssistant || conv[1].Content != "module broken(); endmodule" {
		t.Fatalf("unexpected second message %+v", conv[1])
	}
	if conv[2].Role != providers.RoleUser {
		t.Fatalf("unexpected third role %q", conv[2].Role)
	}
	if !strings.HasPrefix(conv[2].Content, "Refine the following code to fix these errors:\n\n%Error: missing port") {
		t.Fatalf("unexpected instruction %q", conv[2].Content)
	}
	if !strings.HasSuffix(conv[2].Content, "Give full code as the output.") {
		t.Fatalf("unexpected instruction tail %q", conv[2].Content)
	}

	if len(record.Exchanges) != 1 {
		t.Fatalf("expected single refined exchange, got %d", len(record.Exchanges))
	}
	if record.Exchanges[0].Answer != "module fixed(); endmodule" {
		t.Fatalf("unexpected refined answer %q", record.Exchanges[0].Answer)
	}
	if record.Exchanges[0].Prompt != conv[2].Content {
		t.Fatalf("refined prompt should be the instruction")
	}
}

func TestRefineInlinesBackendError(t *testing.T) {
	completer := &fakeCompleter{answers: []string{"err:503 - overloaded"}}
	previous := Record{Exchanges: []Exchange{{Index: 0, Prompt: "p", Answer: "a"}}}

	record, err := Refine(context.Background(), completer, "gpt-4.1", previous, LintIssues{Errors: []string{"e"}})
	if err != nil {
		t.Fatalf("Refine returned error: %v", err)
	}
	if record.Exchanges[0].Answer != "Error: 503 - overloaded" {
		t.Fatalf("unexpected answer %q", record.Exchanges[0].Answer)
	}
}

func TestRefineRequiresPreviousExchange(t *testing.T) {
	completer := &fakeCompleter{}
	if _, err := Refine(context.Background(), completer, "gpt-4.1", Record{}, LintIssues{}); err == nil {
		t.Fatalf("expected error for empty record")
	}
}
