package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/joebaillie21/daycipe.io/internal/middleware"
	"github.com/joebaillie21/daycipe.io/internal/model"
	"github.com/joebaillie21/daycipe.io/internal/service"
)

type StatsHandler struct {
	content *service.ContentService
	reports *service.ReportService
}

func NewStatsHandler(content *service.ContentService, reports *service.ReportService) *StatsHandler {
	return &StatsHandler{content: content, reports: reports}
}

// GetStats handles GET /api/stats — per-kind item totals with hidden
// counts, plus the report count.
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.content.Stats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get stats")
	}
	reportCount, err := h.reports.Count(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get stats")
	}

	content := make(fiber.Map, len(stats))
	for _, kind := range model.Kinds {
		content[string(kind)+"s"] = stats[kind]
	}

	return c.JSON(fiber.Map{
		"content": content,
		"reports": reportCount,
	})
}
