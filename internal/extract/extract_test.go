// internal/extract/extract_test.go
package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{
			name:   "bare module span wins over surrounding prose",
			answer: "Here is the design:\nmodule I2C_driver (input clk);\nendmodule\nHope this helps!",
			want:   "module I2C_driver (input clk);\nendmodule",
		},
		{
			name:   "systemverilog fence",
			answer: "```systemverilog\nlogic [7:0] data;\n```",
			want:   "logic [7:0] data;",
		},
		{
			name:   "generic fence with language tag",
			answer: "```verilog\nassign y = a & b;\n```",
			want:   "assign y = a & b;",
		},
		{
			name:   "untagged fence",
			answer: "```\nparameter WIDTH = 8;\n```",
			want:   "parameter WIDTH = 8;",
		},
		{
			name:   "module span preferred over fence contents",
			answer: "```text\nnot code\n```\nmodule SPI_driver(input clk);\nendmodule",
			want:   "module SPI_driver(input clk);\nendmodule",
		},
		{
			name:   "no code at all",
			answer: "I cannot generate that design.",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCode(tt.answer); got != tt.want {
				t.Fatalf("ExtractCode = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestExtractCodeTruncation drops trailing fence plus commentary that models
// append after the code block.
func TestExtractCodeTruncation(t *testing.T) {
	answer := "```systemverilog\nlogic x;\n```\nThe design above is complete."
	if got := ExtractCode(answer); got != "logic x;" {
		t.Fatalf("ExtractCode = %q", got)
	}
}

func TestModuleName(t *testing.T) {
	if got := ModuleName("module UART_driver (input clk);"); got != "UART_driver" {
		t.Fatalf("ModuleName = %q", got)
	}
	if got := ModuleName("assign y = a;"); got != "unknown_module" {
		t.Fatalf("ModuleName = %q", got)
	}
}

func TestOutputNameAndFileSuffix(t *testing.T) {
	suffix := FileSuffix("i2c_easy_gpt-4.1_RAGFalse.json")
	if suffix != "RAGFalse" {
		t.Fatalf("FileSuffix = %q", suffix)
	}
	if got := OutputName("I2C_driver", "0", suffix); got != "I2C_driver_code_0_RAGFalse.sv" {
		t.Fatalf("OutputName = %q", got)
	}
}

func TestValidateRecord(t *testing.T) {
	valid := []byte(`{"prompt_0":"p","answer_0":"a"}`)
	if err := ValidateRecord(valid); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	if err := ValidateRecord([]byte(`{"prompt_0":"p","note":"x"}`)); err == nil {
		t.Fatalf("foreign key accepted")
	}
	if err := ValidateRecord([]byte(`{"answer_0":7}`)); err == nil {
		t.Fatalf("non-string value accepted")
	}
	if err := ValidateRecord([]byte(`["answer_0"]`)); err == nil {
		t.Fatalf("non-object accepted")
	}
}

// TestProcessTree runs the extractor over a small mirrored tree: one valid
// record, one file with broken JSON that must be skipped.
func TestProcessTree(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()

	recordDir := filepath.Join(inputRoot, "i2c", "gpt-4.1")
	if err := os.MkdirAll(recordDir, 0o755); err != nil {
		t.Fatal(err)
	}

	record := `{
    "prompt_0": "write an i2c driver",
    "answer_0": "` + "```" + `systemverilog\nmodule I2C_driver(input clk);\nendmodule\n` + "```" + `",
    "prompt_1": "no code here",
    "answer_1": "Sorry, I cannot."
}`
	recordPath := filepath.Join(recordDir, "i2c_easy_gpt-4.1_RAGFalse.json")
	if err := os.WriteFile(recordPath, []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}
	brokenPath := filepath.Join(recordDir, "i2c_easy_gpt-4.1_RAGTrue.json")
	if err := os.WriteFile(brokenPath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ProcessTree(inputRoot, outputRoot); err != nil {
		t.Fatalf("ProcessTree failed: %v", err)
	}

	extracted := filepath.Join(outputRoot, "i2c", "gpt-4.1", "I2C_driver_code_0_RAGFalse.sv")
	data, err := os.ReadFile(extracted)
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(data) != "module I2C_driver(input clk);\nendmodule" {
		t.Fatalf("unexpected extracted code %q", data)
	}

	// The codeless answer still produces a placeholder file.
	placeholder := filepath.Join(outputRoot, "i2c", "gpt-4.1", "unknown_module_code_1_RAGFalse.sv")
	if data, err := os.ReadFile(placeholder); err != nil {
		t.Fatalf("placeholder missing: %v", err)
	} else if len(data) != 0 {
		t.Fatalf("placeholder should be empty, got %q", data)
	}

	// The broken record contributes nothing.
	entries, err := os.ReadDir(filepath.Join(outputRoot, "i2c", "gpt-4.1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 extracted files, got %d", len(entries))
	}
}

// TestProcessTreeIdempotent verifies a second pass over unchanged input
// rewrites identical files.
func TestProcessTreeIdempotent(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()

	dir := filepath.Join(inputRoot, "spi", "qwen-coder")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	record := `{"prompt_0": "p", "answer_0": "module SPI_driver(input clk);\nendmodule"}`
	if err := os.WriteFile(filepath.Join(dir, "spi_easy_qwen-coder_RAGTrue.json"), []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ProcessTree(inputRoot, outputRoot); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(outputRoot, "spi", "qwen-coder", "SPI_driver_code_0_RAGTrue.sv")
	first, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}

	if err := ProcessTree(inputRoot, outputRoot); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatalf("second pass changed output: %q vs %q", first, second)
	}
}
