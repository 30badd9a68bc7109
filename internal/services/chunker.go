package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits resume text into overlapping chunks small enough for
// the embedding model. Used by the vector index: a resume is indexed chunk
// by chunk so section-level matches surface in search.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker. Paragraphs are packed greedily; a
// paragraph longer than maxChunkSize is split on sentence boundaries.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var currentChunk strings.Builder

	flush := func(separator string) {
		if currentChunk.Len() == 0 {
			return
		}
		chunks = append(chunks, currentChunk.String())
		currentChunk.Reset()

		if overlap > 0 {
			overlapText := lastNChars(chunks[len(chunks)-1], overlap)
			currentChunk.WriteString(overlapText)
			if overlapText != "" {
				currentChunk.WriteString(separator)
			}
		}
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) > maxChunkSize {
			for _, sentence := range splitIntoSentences(para) {
				if currentChunk.Len()+len(sentence)+1 > maxChunkSize {
					flush(" ")
				}
				if currentChunk.Len() > 0 {
					currentChunk.WriteString(" ")
				}
				currentChunk.WriteString(sentence)
			}
			continue
		}

		if currentChunk.Len()+len(para)+2 > maxChunkSize {
			flush("\n\n")
		}
		if currentChunk.Len() > 0 {
			currentChunk.WriteString("\n\n")
		}
		currentChunk.WriteString(para)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func lastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
