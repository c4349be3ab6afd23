package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/joebaillie21/daycipe.io/internal/middleware"
	"github.com/joebaillie21/daycipe.io/internal/model"
	"github.com/joebaillie21/daycipe.io/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// List handles GET /api/reports.
func (h *ReportHandler) List(c fiber.Ctx) error {
	reports, err := h.svc.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve reports")
	}
	return c.JSON(reports)
}

// ListForContent handles GET /api/reports/content/:kind/:id.
func (h *ReportHandler) ListForContent(c fiber.Ctx) error {
	kind, msg := middleware.ValidateKind(c.Params("kind"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_KIND", msg)
	}
	id, msg := middleware.ValidateContentID(c.Params("id"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", msg)
	}

	reports, err := h.svc.ListForContent(c.Context(), kind, id)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve reports")
	}
	return c.JSON(reports)
}

// Create handles POST /api/reports/create.
func (h *ReportHandler) Create(c fiber.Ctx) error {
	var req model.CreateReportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	id, err := h.svc.File(c.Context(), req)
	if errors.Is(err, model.ErrInvalidArgument) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD",
			"Request does not contain all required fields")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create report")
	}
	return c.JSON(fiber.Map{"reportId": id})
}
