// internal/rag/loader.go
package rag

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadDocument reads a reference document as plain text. PDF files are
// extracted page by page; anything else is read verbatim.
func LoadDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", path, err)
	}
	return string(data), nil
}

func loadPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", path, err)
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read pdf text %s: %w", path, err)
	}
	if len(strings.Fields(string(data))) == 0 {
		return "", fmt.Errorf("pdf %s contains no extractable text", path)
	}
	return string(data), nil
}
