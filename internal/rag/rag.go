// internal/rag/rag.go
// Package rag retrieves protocol documentation context for prompts. A
// protocol's reference document is chunked by word count, embedded once, and
// the best-matching chunks are prepended to each prompt before dispatch.
package rag

import (
	"context"
	"fmt"
	"strings"
)

// Embedder turns texts into embedding vectors. Implemented by the OpenAI
// embeddings client; tests substitute a deterministic fake.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Augment prepends retrieved context to a prompt, separated by a newline.
func Augment(context, prompt string) string {
	if strings.TrimSpace(context) == "" {
		return prompt
	}
	return context + "\n" + prompt
}

// Augmenter binds a built index to an embedder so a run's prompts can be
// enriched with one shared retrieval pass.
type Augmenter struct {
	embedder Embedder
	index    *Index
	topK     int
}

// NewAugmenter chunks and embeds the document at docPath and returns an
// Augmenter ready to serve queries.
func NewAugmenter(ctx context.Context, embedder Embedder, docPath string, chunkSize, overlap, topK int) (*Augmenter, error) {
	text, err := LoadDocument(docPath)
	if err != nil {
		return nil, err
	}

	index, err := BuildIndex(ctx, embedder, docPath, text, chunkSize, overlap)
	if err != nil {
		return nil, err
	}

	return &Augmenter{embedder: embedder, index: index, topK: topK}, nil
}

// ApplyAll retrieves the top chunks once, querying with the concatenation of
// every prompt in the run, and prepends the same context to each prompt. One
// retrieval keeps the context consistent across a run and costs a single
// query embedding.
func (a *Augmenter) ApplyAll(ctx context.Context, prompts []string) ([]string, error) {
	chunks, err := a.index.Retrieve(ctx, a.embedder, strings.Join(prompts, " "), a.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Entry.Text)
	}
	context := strings.Join(texts, "\n")

	augmented := make([]string, len(prompts))
	for i, prompt := range prompts {
		augmented[i] = Augment(context, prompt)
	}
	return augmented, nil
}
