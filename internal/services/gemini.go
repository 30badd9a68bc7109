package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

const ocrPrompt = "Transcribe all text visible in this document page image. " +
	"Return only the plain text, preserving reading order. " +
	"If the page contains no text, return an empty response."

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	RecognizeImage(ctx context.Context, imagePNG []byte) (string, error)
	RecognizeImageWithRetry(ctx context.Context, imagePNG []byte, maxRetries int) (string, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	retryDelay time.Duration
}

func NewGeminiService(apiKey string, retryDelay time.Duration) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}

	return &geminiService{
		client:     client,
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
		retryDelay: retryDelay,
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// RecognizeImage implements GeminiService. It sends a rendered page image to
// the vision model and returns the transcribed text.
func (g *geminiService) RecognizeImage(ctx context.Context, imagePNG []byte) (string, error) {
	temperature := float32(0.0)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(imagePNG, "image/png"),
			genai.NewPartFromText(ocrPrompt),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to recognize image: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	return resp.Text(), nil
}

// RecognizeImageWithRetry implements GeminiService. The delay between
// attempts starts at the configured initial value and doubles each retry.
func (g *geminiService) RecognizeImageWithRetry(ctx context.Context, imagePNG []byte, maxRetries int) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	delay := g.retryDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.RecognizeImage(ctx, imagePNG)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if attempt == maxRetries {
			break
		}

		log.Printf("⚠️  Recognition attempt %d/%d failed, retrying in %s: %v", attempt, maxRetries, delay, err)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
