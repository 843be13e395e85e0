package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CMDs", "commands.cmd")

	if err := AppendHistory(path, []string{"svbench", "run", "--protocol", "i2c"}); err != nil {
		t.Fatalf("AppendHistory failed: %v", err)
	}
	if err := AppendHistory(path, []string{"svbench", "extract"}); err != nil {
		t.Fatalf("AppendHistory failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 history lines, got %d", len(lines))
	}
	if lines[0] != "svbench run --protocol i2c" {
		t.Fatalf("unexpected first history line %q", lines[0])
	}
	if lines[1] != "svbench extract" {
		t.Fatalf("unexpected second history line %q", lines[1])
	}
}
