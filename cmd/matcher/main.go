// Command matcher scores a batch of resumes against a job description.
//
// It reads one JSON request from stdin:
//
//	{"job_description": "...", "file_paths": ["a.pdf", "b.pdf"]}
//
// and writes the ranked results as a JSON array to stdout. Diagnostics go
// to stderr only, so a supervising process can always parse stdout. On any
// unrecoverable failure the command emits an empty array and exits 0 rather
// than crashing its caller.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"

	"resumeshortlist/internal/config"
	"resumeshortlist/internal/models"
	"resumeshortlist/internal/services"
)

func main() {
	// Keep stdout exclusively for the result payload.
	log.SetOutput(os.Stderr)

	results := run()

	if err := json.NewEncoder(os.Stdout).Encode(results); err != nil {
		log.Printf("❌ Failed to encode results: %v", err)
	}
}

func run() []models.CandidateMatch {
	empty := []models.CandidateMatch{}

	cfg := config.Load()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Printf("❌ Failed to read request: %v", err)
		return empty
	}
	if len(input) == 0 {
		return empty
	}

	var req models.BatchRequest
	if err := json.Unmarshal(input, &req); err != nil {
		log.Printf("❌ Malformed request JSON: %v", err)
		return empty
	}

	var recognizer services.ImageRecognizer
	var embedder services.Embedder
	if cfg.Gemini.APIKey != "" {
		geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.RetryInitialDelay)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Gemini, continuing without it: %v", err)
		} else {
			recognizer = geminiService
			embedder = geminiService
		}
	}

	strategy := cfg.Matcher.Strategy
	if strategy == "embedding" && embedder == nil {
		log.Println("⚠️  No Gemini API key; falling back to the tfidf strategy")
		strategy = "tfidf"
	}

	oracle, err := services.NewSimilarityOracle(strategy, embedder)
	if err != nil {
		log.Printf("❌ Failed to initialize similarity oracle: %v", err)
		return empty
	}

	matcher := services.NewMatcherService(
		services.NewExtractorService(recognizer, cfg.Worker.RetryMaxAttempts),
		services.NewNormalizerService(),
		services.NewSkillVocabulary(),
		services.NewExperienceService(),
		oracle,
		services.NewScorerService(cfg.Matcher.TargetYears),
		cfg.Matcher.MinTextLength,
		cfg.Matcher.DownloadBaseURL,
	)

	return matcher.MatchBatch(context.Background(), req)
}
