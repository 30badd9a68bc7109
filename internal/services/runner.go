package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"resumeshortlist/internal/models"
	"resumeshortlist/internal/repositories"
)

// RunnerService executes one queued match run end to end: resolves the
// run's documents, drives the matching pipeline, persists the ranked
// results, and feeds the resume index.
type RunnerService interface {
	ProcessRun(ctx context.Context, runID uuid.UUID) error
}

type runnerService struct {
	runRepo    repositories.MatchRunRepository
	docRepo    repositories.DocumentRepository
	matcher    MatcherService
	index      ResumeIndexService // nil when Qdrant is disabled
	normalizer NormalizerService
}

func NewRunnerService(
	runRepo repositories.MatchRunRepository,
	docRepo repositories.DocumentRepository,
	matcher MatcherService,
	index ResumeIndexService,
) RunnerService {
	return &runnerService{
		runRepo:    runRepo,
		docRepo:    docRepo,
		matcher:    matcher,
		index:      index,
		normalizer: NewNormalizerService(),
	}
}

func (r *runnerService) ProcessRun(ctx context.Context, runID uuid.UUID) error {
	if err := r.runRepo.UpdateStatus(runID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting match run %s\n", runID)

	run, err := r.runRepo.FindByID(runID)
	if err != nil {
		r.runRepo.UpdateError(runID, err.Error())
		return fmt.Errorf("failed to get match run: %w", err)
	}

	docs, err := r.docRepo.FindByRunID(runID)
	if err != nil {
		r.runRepo.UpdateError(runID, fmt.Sprintf("documents not found: %v", err))
		return fmt.Errorf("failed to get run documents: %w", err)
	}

	filePaths := make([]string, 0, len(docs))
	for _, doc := range docs {
		filePaths = append(filePaths, doc.FilePath)
	}

	results, texts := r.matcher.MatchBatchWithTexts(ctx, models.BatchRequest{
		JobDescription: run.JobDescription,
		FilePaths:      filePaths,
	})

	payload, err := json.Marshal(results)
	if err != nil {
		r.runRepo.UpdateError(runID, fmt.Sprintf("failed to serialize results: %v", err))
		return fmt.Errorf("failed to serialize results: %w", err)
	}

	if err := r.runRepo.UpdateResults(runID, string(payload)); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	r.indexResumes(ctx, runID, docs, texts)

	log.Printf("✅ Match run %s completed (%d resumes ranked)\n", runID, len(results))
	return nil
}

// indexResumes upserts each sufficiently-extracted resume into the vector
// index, reusing the texts the match pass already extracted. Best effort
// only.
func (r *runnerService) indexResumes(ctx context.Context, runID uuid.UUID, docs []models.Document, texts map[string]string) {
	if r.index == nil {
		return
	}

	for _, doc := range docs {
		text := texts[doc.FilePath]
		if len(r.normalizer.Normalize(text)) < minSufficientChars {
			continue
		}

		if err := r.index.IndexResume(ctx, runID.String(), doc.Filename, text); err != nil {
			log.Printf("⚠️  Failed to index %s: %v", doc.Filename, err)
		}
	}
}
