package logging

import (
	"os"
	"path/filepath"
	"strings"
)

// AppendHistory records one invocation's command line in the append-only
// history file, creating the directory when needed.
func AppendHistory(path string, argv []string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(strings.Join(argv, " ") + "\n")
	return err
}
