// internal/dispatch/record.go
package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Exchange is one prompt/answer pair of a run. Index is the numeric suffix of
// the persisted prompt_<i>/answer_<i> keys; indices are not required to be
// contiguous when a record is loaded from disk.
type Exchange struct {
	Index  int
	Prompt string
	Answer string
}

// Record is one run's ordered prompt/answer exchanges. It persists as a JSON
// object whose keys appear in exchange order.
type Record struct {
	Exchanges []Exchange
}

var keyPattern = regexp.MustCompile(`^(prompt|answer)_([0-9]+)$`)

// MarshalJSON writes the record as an insertion-ordered JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ex := range r.Exchanges {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writePair(&buf, fmt.Sprintf("prompt_%d", ex.Index), ex.Prompt); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		if err := writePair(&buf, fmt.Sprintf("answer_%d", ex.Index), ex.Answer); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writePair(buf *bytes.Buffer, key, value string) error {
	keyData, err := json.Marshal(key)
	if err != nil {
		return err
	}
	valueData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(keyData)
	buf.WriteByte(':')
	buf.Write(valueData)
	return nil
}

// UnmarshalJSON reads prompt_<i>/answer_<i> pairs, ordering exchanges by
// index. Keys outside that shape are rejected.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	byIndex := make(map[int]*Exchange)
	for key, value := range raw {
		m := keyPattern.FindStringSubmatch(key)
		if m == nil {
			return fmt.Errorf("unexpected key %q in response record", key)
		}
		var index int
		fmt.Sscanf(m[2], "%d", &index)
		ex, ok := byIndex[index]
		if !ok {
			ex = &Exchange{Index: index}
			byIndex[index] = ex
		}
		if m[1] == "prompt" {
			ex.Prompt = value
		} else {
			ex.Answer = value
		}
	}

	indices := make([]int, 0, len(byIndex))
	for index := range byIndex {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	r.Exchanges = r.Exchanges[:0]
	for _, index := range indices {
		r.Exchanges = append(r.Exchanges, *byIndex[index])
	}
	return nil
}

// Save writes the record as indented JSON with a trailing newline, creating
// parent directories as needed.
func (r Record) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("unable to marshal response record: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "    "); err != nil {
		return fmt.Errorf("unable to indent response record: %w", err)
	}
	buf.WriteByte('\n')

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("unable to write response record %s: %w", path, err)
	}
	return nil
}

// LoadRecord reads a persisted response record.
func LoadRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("unable to read response record %s: %w", path, err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("unable to parse response record %s: %w", path, err)
	}
	return record, nil
}
