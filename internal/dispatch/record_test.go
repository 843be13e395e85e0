// internal/dispatch/record_test.go
package dispatch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRecordMarshalOrder verifies that record keys appear in exchange order as
// a contiguous prompt_i/answer_i sequence.
func TestRecordMarshalOrder(t *testing.T) {
	record := Record{Exchanges: []Exchange{
		{Index: 0, Prompt: "p0", Answer: "a0"},
		{Index: 1, Prompt: "p1", Answer: "a1"},
	}}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	got := string(data)
	want := `{"prompt_0":"p0","answer_0":"a0","prompt_1":"p1","answer_1":"a1"}`
	if got != want {
		t.Fatalf("unexpected JSON:\n got %s\nwant %s", got, want)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	original := Record{Exchanges: []Exchange{
		{Index: 0, Prompt: "write a driver", Answer: "```systemverilog\nmodule m(); endmodule\n```"},
		{Index: 1, Prompt: "write a monitor", Answer: "Error: 500 - backend unavailable"},
	}}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	var loaded Record
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(loaded.Exchanges) != 2 {
		t.Fatalf("expected 2 exchanges, got %d", len(loaded.Exchanges))
	}
	for i := range original.Exchanges {
		if loaded.Exchanges[i] != original.Exchanges[i] {
			t.Fatalf("exchange %d mismatch: %+v vs %+v", i, loaded.Exchanges[i], original.Exchanges[i])
		}
	}
}

// TestRecordUnmarshalNonContiguous accepts gaps in the index sequence and
// orders exchanges numerically.
func TestRecordUnmarshalNonContiguous(t *testing.T) {
	raw := `{"answer_2":"a2","prompt_0":"p0","answer_0":"a0","prompt_2":"p2"}`

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(record.Exchanges) != 2 {
		t.Fatalf("expected 2 exchanges, got %d", len(record.Exchanges))
	}
	if record.Exchanges[0].Index != 0 || record.Exchanges[1].Index != 2 {
		t.Fatalf("unexpected indices %d %d", record.Exchanges[0].Index, record.Exchanges[1].Index)
	}
	if record.Exchanges[1].Answer != "a2" {
		t.Fatalf("unexpected answer %q", record.Exchanges[1].Answer)
	}
}

func TestRecordUnmarshalRejectsForeignKeys(t *testing.T) {
	var record Record
	if err := json.Unmarshal([]byte(`{"prompt_0":"p","extra":"x"}`), &record); err == nil {
		t.Fatalf("expected error for foreign key")
	}
}

func TestRecordSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2c", "gpt-4.1", "i2c_easy_gpt-4.1_RAGFalse.json")
	record := Record{Exchanges: []Exchange{{Index: 0, Prompt: "p", Answer: "a"}}}

	if err := record.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Fatalf("expected trailing newline")
	}
	if !strings.Contains(string(data), "    \"prompt_0\"") {
		t.Fatalf("expected four-space indentation, got:\n%s", data)
	}

	loaded, err := LoadRecord(path)
	if err != nil {
		t.Fatalf("LoadRecord failed: %v", err)
	}
	if len(loaded.Exchanges) != 1 || loaded.Exchanges[0].Answer != "a" {
		t.Fatalf("unexpected loaded record %+v", loaded)
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("outputs", "i2c", "gpt-4.1", "easy", true)
	want := filepath.Join("outputs", "i2c", "gpt-4.1", "i2c_easy_gpt-4.1_RAGTrue.json")
	if got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}
}
