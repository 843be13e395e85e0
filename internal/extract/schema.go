// internal/extract/schema.go
package extract

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema constrains response records to string-valued prompt_i and
// answer_i keys.
var recordSchema = map[string]any{
	"type": "object",
	"patternProperties": map[string]any{
		"^(prompt|answer)_[0-9]+$": map[string]any{"type": "string"},
	},
	"additionalProperties": false,
}

// ValidateRecord checks raw JSON against the response record schema.
func ValidateRecord(data []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(recordSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("response record is invalid: %s", strings.Join(details, "; "))
	}
	return nil
}
