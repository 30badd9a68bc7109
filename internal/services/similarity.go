package services

import (
	"context"
	"fmt"
	"log"
	"math"
)

// SimilarityOracle scores each resume text against the job text, returning
// one value in [0,100] per resume, in input order.
//
// The interface is batch shaped on purpose: the term-frequency strategy must
// vectorize the whole corpus (job description plus every resume) jointly
// before any per-document similarity exists, so its scores are only
// comparable within one call. The embedding strategy has no such coupling
// and scores each resume independently. The two strategies are therefore
// not numerically comparable across deployments.
type SimilarityOracle interface {
	Scores(ctx context.Context, jobText string, resumeTexts []string) ([]float64, error)
}

// NewSimilarityOracle picks the configured strategy. embedder may be nil
// for the tfidf strategy.
func NewSimilarityOracle(strategy string, embedder Embedder) (SimilarityOracle, error) {
	switch strategy {
	case "embedding":
		if embedder == nil {
			return nil, fmt.Errorf("embedding strategy requires a configured embedder")
		}
		return NewEmbeddingOracle(embedder), nil
	case "tfidf":
		return NewTFIDFOracle(), nil
	default:
		return nil, fmt.Errorf("unknown similarity strategy: %s", strategy)
	}
}

// Embedder is the piece of GeminiService the embedding oracle depends on.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// embeddingOracle encodes the job description and each resume independently
// with a pretrained embedding model and takes the cosine of the vectors,
// scaled by max(0, cos)*100.
type embeddingOracle struct {
	embedder Embedder
}

func NewEmbeddingOracle(embedder Embedder) SimilarityOracle {
	return &embeddingOracle{embedder: embedder}
}

func (o *embeddingOracle) Scores(ctx context.Context, jobText string, resumeTexts []string) ([]float64, error) {
	jobVec, err := o.embedder.GenerateEmbedding(ctx, jobText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	scores := make([]float64, len(resumeTexts))
	for i, text := range resumeTexts {
		if text == "" {
			continue
		}

		resumeVec, err := o.embedder.GenerateEmbedding(ctx, text)
		if err != nil {
			// One bad resume must not sink the batch; it scores 0.
			log.Printf("⚠️  Failed to embed resume %d: %v", i, err)
			continue
		}

		scores[i] = math.Max(0, cosineSimilarity32(jobVec, resumeVec)*100)
	}

	return scores, nil
}

func cosineSimilarity32(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
