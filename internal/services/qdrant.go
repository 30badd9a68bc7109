package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"resumeshortlist/internal/models"
)

// ResumeIndexService maintains the vector index of processed resumes so
// recruiters can search past candidates by free text. Indexing is best
// effort: it never blocks or fails a match run.
type ResumeIndexService interface {
	InitCollection() error
	IndexResume(ctx context.Context, runID, fileName, text string) error
	Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error)
}

type resumeIndexService struct {
	client         *qdrant.Client
	embedder       Embedder
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
}

func NewResumeIndexService(urlStr, apiKey, collectionName string, embedder Embedder) (ResumeIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &resumeIndexService{
		client:         client,
		embedder:       embedder,
		chunker:        NewTextChunker(),
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 output size
	}, nil
}

// InitCollection implements ResumeIndexService.
func (r *resumeIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := r.client.CollectionExists(ctx, r.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = r.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: r.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     r.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", r.collectionName)
	return nil
}

// IndexResume implements ResumeIndexService. The resume text is chunked so
// individual sections (summary, one role, one project) stay searchable.
func (r *resumeIndexService) IndexResume(ctx context.Context, runID, fileName, text string) error {
	chunks := r.chunker.ChunkText(text, 1000, 200)

	var points []*qdrant.PointStruct
	for i, chunk := range chunks {
		embedding, err := r.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("⚠️  Failed to embed chunk %d of %s: %v", i+1, fileName, err)
			continue
		}

		points = append(points, &qdrant.PointStruct{
			Id:      newResumePointID(),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"run_id":    runID,
				"file_name": fileName,
				"text":      chunk,
			}),
		})
	}

	if len(points) == 0 {
		return fmt.Errorf("no chunks of %s could be embedded", fileName)
	}

	_, err := r.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: r.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// Search implements ResumeIndexService.
func (r *resumeIndexService) Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	embedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	searchResult, err := r.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: r.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var hits []models.SearchHit
	for _, point := range searchResult {
		hit := models.SearchHit{Score: point.Score}

		if name, ok := point.Payload["file_name"]; ok {
			if val, ok := name.GetKind().(*qdrant.Value_StringValue); ok {
				hit.FileName = val.StringValue
			}
		}
		if text, ok := point.Payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				hit.Snippet = snippet(val.StringValue, 200)
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

// newResumePointID mints a point id from the full UUID string. The index
// accumulates across runs, so truncated numeric ids would eventually
// collide and overwrite unrelated chunks.
func newResumePointID() *qdrant.PointId {
	return qdrant.NewID(uuid.New().String())
}

func snippet(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "…"
}
