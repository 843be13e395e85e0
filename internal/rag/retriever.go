// internal/rag/retriever.go
package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// IndexEntry is one embedded chunk of a reference document.
type IndexEntry struct {
	Doc       string
	Offset    int
	Text      string
	Embedding []float64
}

// Index holds the embedded chunks of a single document.
type Index struct {
	Entries []IndexEntry
}

// RetrievedChunk is a chunk plus similarity score.
type RetrievedChunk struct {
	Entry IndexEntry
	Score float64
}

// BuildIndex chunks the document text and embeds every chunk in one request.
func BuildIndex(ctx context.Context, embedder Embedder, doc, text string, chunkSize, overlap int) (*Index, error) {
	chunks := ChunkText(text, chunkSize, overlap)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document %s produced no chunks", doc)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed document %s: %w", doc, err)
	}

	entries := make([]IndexEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = IndexEntry{
			Doc:       doc,
			Offset:    c.Offset,
			Text:      c.Text,
			Embedding: vectors[i],
		}
	}
	return &Index{Entries: entries}, nil
}

// Retrieve embeds the query and returns the topK most similar chunks, best
// first.
func (idx *Index) Retrieve(ctx context.Context, embedder Embedder, query string, topK int) ([]RetrievedChunk, error) {
	if len(idx.Entries) == 0 {
		return nil, fmt.Errorf("index contains no entries")
	}

	vectors, err := embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec := vectors[0]

	chunks := scoreEntries(idx.Entries, queryVec)
	if topK <= 0 {
		topK = 3
	}
	if topK > len(chunks) {
		topK = len(chunks)
	}
	return chunks[:topK], nil
}

func scoreEntries(entries []IndexEntry, queryVec []float64) []RetrievedChunk {
	chunks := make([]RetrievedChunk, 0, len(entries))
	queryNorm := vectorNorm(queryVec)
	for _, entry := range entries {
		if len(entry.Embedding) != len(queryVec) {
			continue
		}
		chunks = append(chunks, RetrievedChunk{
			Entry: entry,
			Score: cosineSimilarity(queryVec, entry.Embedding, queryNorm),
		})
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Score > chunks[j].Score
	})
	return chunks
}

func cosineSimilarity(a, b []float64, normA float64) float64 {
	if normA == 0 {
		return 0
	}
	normB := vectorNorm(b)
	if normB == 0 {
		return 0
	}
	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (normA * normB)
}

func vectorNorm(v []float64) float64 {
	sum := 0.0
	for _, val := range v {
		sum += val * val
	}
	return math.Sqrt(sum)
}
