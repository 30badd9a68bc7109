package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumeshortlist/internal/models"
	"resumeshortlist/internal/repositories"
)

type ResultHandler struct {
	runRepo repositories.MatchRunRepository
}

func NewResultHandler(runRepo repositories.MatchRunRepository) *ResultHandler {
	return &ResultHandler{
		runRepo: runRepo,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	runID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match run ID format",
		})
	}

	run, err := h.runRepo.FindByID(runID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Match run not found",
		})
	}

	response := models.ResultResponse{
		ID:     run.ID.String(),
		Status: string(run.Status),
	}

	if run.Status == models.StatusCompleted && run.ResultsJSON != nil {
		var results []models.CandidateMatch
		if err := json.Unmarshal([]byte(*run.ResultsJSON), &results); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to decode stored results",
			})
		}
		response.Results = results
	}

	if run.Status == models.StatusFailed && run.ErrorMessage != "" {
		response.ErrorMessage = &run.ErrorMessage
	}

	return c.JSON(response)
}
