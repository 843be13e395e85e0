// internal/dispatch/dispatch.go
// Package dispatch sends protocol prompts to a backend one at a time and
// collects the answers into ordered response records.
package dispatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/providers"
)

// RAGTag renders the RAG flag the way it is spelled in output filenames. The
// metrics aggregator later recovers the flag from this exact spelling.
func RAGTag(useRAG bool) string {
	if useRAG {
		return "True"
	}
	return "False"
}

// OutputPath builds the response record path for one run:
// <root>/<protocol>/<model>/<protocol>_<dataset>_<model>_RAG<True|False>.json
func OutputPath(root, protocol, model, dataset string, useRAG bool) string {
	filename := fmt.Sprintf("%s_%s_%s_RAG%s.json", protocol, dataset, model, RAGTag(useRAG))
	return filepath.Join(root, protocol, model, filename)
}

// Run sends each prompt to the backend in order and collects the answers.
// Backend failures never abort the batch; the error text is stored in place
// of the answer and the next prompt is sent.
func Run(ctx context.Context, completer providers.Completer, model string, promptTexts []string) Record {
	var record Record
	for i, prompt := range promptTexts {
		answer, err := completer.Complete(ctx, model, []providers.Message{
			{Role: providers.RoleUser, Content: prompt},
		})
		if err != nil {
			answer = fmt.Sprintf("Error: %v", err)
			logging.LogEvent("Prompt %d failed for model %s: %v", i, model, err)
		}
		record.Exchanges = append(record.Exchanges, Exchange{
			Index:  i,
			Prompt: prompt,
			Answer: answer,
		})
	}
	return record
}
