// internal/extract/extract.go
// Package extract pulls SystemVerilog source out of LLM response records. The
// answers mix prose with fenced code blocks, so extraction tries a ranked set
// of patterns and keeps the first hit.
package extract

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mwiater/svbench/internal/console"
	"github.com/mwiater/svbench/internal/logging"
)

var (
	// Strategy order matters: a bare module span is the strongest signal,
	// then any fenced block, then an explicitly tagged systemverilog fence.
	moduleSpanPattern   = regexp.MustCompile(`(?s)module\s+\w+\s*\(.*?endmodule`)
	genericFencePattern = regexp.MustCompile(`(?s)` + "```" + `(?:\w*\n)?(.*?)` + "```")
	svFencePattern      = regexp.MustCompile(`(?s)` + "```" + `systemverilog\s*(.*?)` + "```")

	moduleNamePattern = regexp.MustCompile(`module\s+(\w+)`)
	answerKeyPattern  = regexp.MustCompile(`^answer_([0-9]+)$`)
)

// ExtractCode returns the SystemVerilog source found in an answer, truncated
// at the first stray closing fence. An answer with no recognizable code
// yields an empty string.
func ExtractCode(answer string) string {
	if match := moduleSpanPattern.FindString(answer); match != "" {
		return truncateAtFence(strings.TrimSpace(match))
	}
	if match := genericFencePattern.FindStringSubmatch(answer); match != nil {
		return truncateAtFence(strings.TrimSpace(match[1]))
	}
	if match := svFencePattern.FindStringSubmatch(answer); match != nil {
		return truncateAtFence(strings.TrimSpace(match[1]))
	}
	return ""
}

// truncateAtFence cuts everything from the first newline-prefixed fence on.
// Model answers sometimes close a block and keep explaining.
func truncateAtFence(code string) string {
	if pos := strings.Index(code, "\n```"); pos != -1 {
		return strings.TrimSpace(code[:pos])
	}
	return strings.TrimSpace(code)
}

// ModuleName reads the declared module name, defaulting when none is found.
func ModuleName(code string) string {
	if match := moduleNamePattern.FindStringSubmatch(code); match != nil {
		return match[1]
	}
	return "unknown_module"
}

// OutputName builds the .sv filename for one extracted answer:
// <module>_code_<index>_<suffix>.sv
func OutputName(module, index, suffix string) string {
	return fmt.Sprintf("%s_code_%s_%s.sv", module, index, suffix)
}

// FileSuffix derives the filename suffix from a response record name: the
// last underscore-separated token without the .json extension, typically the
// RAGTrue or RAGFalse tag.
func FileSuffix(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), ".json")
	parts := strings.Split(base, "_")
	return parts[len(parts)-1]
}

// ProcessTree walks inputRoot for response records and writes one .sv file
// per answer under outputRoot, mirroring the directory layout. Malformed or
// schema-invalid records are logged and skipped.
func ProcessTree(inputRoot, outputRoot string) error {
	return filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		if err := processRecord(inputRoot, outputRoot, path); err != nil {
			logging.LogEvent("%s %s: %v", console.Failure("Skipping"), path, err)
		}
		return nil
	})
}

func processRecord(inputRoot, outputRoot, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	if err := ValidateRecord(data); err != nil {
		return err
	}

	var record map[string]string
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	rel, err := filepath.Rel(inputRoot, filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("relativize %s: %w", path, err)
	}
	suffix := FileSuffix(path)

	for _, key := range sortedAnswerKeys(record) {
		index := strings.SplitN(key, "_", 2)[1]
		code := ExtractCode(record[key])
		module := ModuleName(code)

		outputPath := filepath.Join(outputRoot, rel, OutputName(module, index, suffix))
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(outputPath, []byte(code), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outputPath, err)
		}
		logging.LogEvent("%s %s", console.Success("Saved"), outputPath)
	}
	return nil
}

func sortedAnswerKeys(record map[string]string) []string {
	type indexed struct {
		key   string
		index int
	}
	var keys []indexed
	for key := range record {
		match := answerKeyPattern.FindStringSubmatch(key)
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		keys = append(keys, indexed{key: key, index: index})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].index < keys[j].index })

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.key
	}
	return out
}
