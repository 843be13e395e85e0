// internal/rag/chunker_test.go
package rag

import (
	"strings"
	"testing"
)

func TestChunkTextOverlap(t *testing.T) {
	words := make([]string, 12)
	for i := range words {
		words[i] = string(rune('a' + i))
	}
	text := strings.Join(words, " ")

	chunks := ChunkText(text, 5, 2)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "a b c d e" {
		t.Fatalf("unexpected first chunk %q", chunks[0].Text)
	}
	// Step is chunkSize-overlap, so the second chunk restarts 2 words back.
	if chunks[1].Offset != 3 || chunks[1].Text != "d e f g h" {
		t.Fatalf("unexpected second chunk %+v", chunks[1])
	}
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(last.Text, "l") {
		t.Fatalf("last chunk does not reach the end: %q", last.Text)
	}
	if last.Words != len(strings.Fields(last.Text)) {
		t.Fatalf("word count mismatch on last chunk: %+v", last)
	}
}

func TestChunkTextEdgeCases(t *testing.T) {
	if got := ChunkText("", 5, 1); got != nil {
		t.Fatalf("empty text should yield no chunks, got %v", got)
	}
	if got := ChunkText("a b c", 0, 1); got != nil {
		t.Fatalf("non-positive chunk size should yield no chunks, got %v", got)
	}
	// Overlap >= chunkSize falls back to non-overlapping steps.
	chunks := ChunkText("a b c d", 2, 5)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	chunks = ChunkText("one two", 10, 2)
	if len(chunks) != 1 || chunks[0].Text != "one two" {
		t.Fatalf("short text should be a single chunk, got %v", chunks)
	}
}
