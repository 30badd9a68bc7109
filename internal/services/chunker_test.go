package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	c := NewTextChunker()

	chunks := c.ChunkText("A short resume paragraph.", 1000, 200)

	assert.Len(t, chunks, 1)
}

func TestChunkText_LongTextRespectsMaxSize(t *testing.T) {
	c := NewTextChunker()

	var paragraphs []string
	for i := 0; i < 20; i++ {
		paragraphs = append(paragraphs, strings.Repeat("engineering experience detail ", 10))
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := c.ChunkText(text, 500, 100)

	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 700, "chunk should stay near the max size")
	}
}

func TestChunkText_EmptyInput(t *testing.T) {
	c := NewTextChunker()

	assert.Empty(t, c.ChunkText("", 1000, 200))
}
