package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumeshortlist/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueRun(runID uuid.UUID)
}

type worker struct {
	runRepo     repositories.MatchRunRepository
	runner      RunnerService
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	runRepo repositories.MatchRunRepository,
	runner RunnerService,
	concurrency int,
) Worker {
	return &worker{
		runRepo:     runRepo,
		runner:      runner,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processRuns(ctx, i+1)
	}

	// Re-enqueue runs that were queued before a restart.
	w.wg.Add(1)
	go w.pollPendingRuns(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueRun implements Worker.
func (w *worker) EnqueueRun(runID uuid.UUID) {
	select {
	case w.jobQueue <- runID:
		log.Printf("📥 Match run %s enqueued\n", runID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue run %s\n", runID)
	}
}

func (w *worker) processRuns(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case runID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing run %s\n", workerID, runID)
			if err := w.runner.ProcessRun(ctx, runID); err != nil {
				log.Printf("❌ Worker #%d failed to process run %s: %v\n", workerID, runID, err)
			}
		}
	}
}

func (w *worker) pollPendingRuns(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pendingRuns, err := w.runRepo.FindPendingRuns(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending runs: %v\n", err)
				continue
			}

			for _, run := range pendingRuns {
				w.EnqueueRun(run.ID)
			}
		}
	}
}
