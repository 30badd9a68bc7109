package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"resumeshortlist/internal/services"
)

type SearchHandler struct {
	index services.ResumeIndexService
}

func NewSearchHandler(index services.ResumeIndexService) *SearchHandler {
	return &SearchHandler{index: index}
}

// HandleSearch handles GET /search?q=...&limit=... over the resume index.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	if h.index == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Resume search is disabled",
		})
	}

	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q is required",
		})
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}

	hits, err := h.index.Search(c.Context(), query, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"results": hits,
	})
}
