package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumeshortlist/internal/models"
	"resumeshortlist/internal/repositories"
	"resumeshortlist/internal/services"
)

type MatchHandler struct {
	runRepo repositories.MatchRunRepository
	docRepo repositories.DocumentRepository
	worker  services.Worker
}

func NewMatchHandler(
	runRepo repositories.MatchRunRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *MatchHandler {
	return &MatchHandler{
		runRepo: runRepo,
		docRepo: docRepo,
		worker:  worker,
	}
}

// HandleMatch handles POST /match: creates a queued run over the given
// documents and hands it to the worker.
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var req models.MatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	if len(req.DocumentIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document_ids is required",
		})
	}

	docIDs := make([]uuid.UUID, 0, len(req.DocumentIDs))
	for _, raw := range req.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid document id format: " + raw,
			})
		}
		docIDs = append(docIDs, id)
	}

	// Verify documents exist
	docs, err := h.docRepo.FindByIDs(docIDs)
	if err != nil || len(docs) != len(docIDs) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "One or more documents not found",
		})
	}

	run := &models.MatchRun{
		ID:             uuid.New(),
		JobDescription: req.JobDescription,
		Status:         models.StatusQueued,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.runRepo.Create(run, docIDs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create match run",
		})
	}

	h.worker.EnqueueRun(run.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.MatchResponse{
		ID:     run.ID.String(),
		Status: string(models.StatusQueued),
	})
}
