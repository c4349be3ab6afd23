package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/joebaillie21/daycipe.io/internal/middleware"
	"github.com/joebaillie21/daycipe.io/internal/model"
	"github.com/joebaillie21/daycipe.io/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Upvote handles POST /api/{kind}s/:id/upvote — the +1 primitive.
func (h *VoteHandler) Upvote(kind model.Kind) fiber.Handler {
	return h.primitive(kind, "up")
}

// Downvote handles POST /api/{kind}s/:id/downvote — the -1 primitive.
func (h *VoteHandler) Downvote(kind model.Kind) fiber.Handler {
	return h.primitive(kind, "down")
}

func (h *VoteHandler) primitive(kind model.Kind, direction string) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, msg := middleware.ValidateContentID(c.Params("id"))
		if msg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID",
				fmt.Sprintf("Invalid %s ID", kind))
		}

		var (
			result *model.VoteResult
			err    error
		)
		if direction == "up" {
			result, err = h.svc.Upvote(c.Context(), kind, id)
		} else {
			result, err = h.svc.Downvote(c.Context(), kind, id)
		}
		if err != nil {
			return h.voteError(c, kind, direction, err)
		}

		Metrics.VotesTotal.WithLabelValues(string(kind), direction).Inc()
		if !result.IsShown {
			Metrics.HiddenTotal.WithLabelValues(string(kind)).Inc()
		}

		return c.JSON(voteResponse(kind, result))
	}
}

// ToggleRequest is the body for the server-side toggle wrapper.
type ToggleRequest struct {
	Voter     string `json:"voter"`
	Direction string `json:"direction"`
}

// Toggle handles POST /api/{kind}s/:id/vote — drives the full
// None/Up/Down state machine for clients that delegate vote state to
// the server. Repeating a direction undoes it; switching applies both
// steps as one atomic write.
func (h *VoteHandler) Toggle(kind model.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, msg := middleware.ValidateContentID(c.Params("id"))
		if msg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID",
				fmt.Sprintf("Invalid %s ID", kind))
		}

		var req ToggleRequest
		if err := c.Bind().JSON(&req); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		}
		if req.Voter == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD", "voter is required")
		}

		result, state, err := h.svc.Toggle(c.Context(), kind, id, req.Voter, service.Direction(req.Direction))
		if errors.Is(err, model.ErrInvalidArgument) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_DIRECTION",
				"direction must be up or down")
		}
		if err != nil {
			return h.voteError(c, kind, req.Direction, err)
		}

		Metrics.VotesTotal.WithLabelValues(string(kind), req.Direction).Inc()
		if !result.IsShown {
			Metrics.HiddenTotal.WithLabelValues(string(kind)).Inc()
		}

		resp := voteResponse(kind, result)
		resp["voteState"] = state
		return c.JSON(resp)
	}
}

func (h *VoteHandler) voteError(c fiber.Ctx, kind model.Kind, direction string, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("%s not found", kind))
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
		fmt.Sprintf("Failed to %svote %s", direction, kind))
}

func voteResponse(kind model.Kind, result *model.VoteResult) fiber.Map {
	return fiber.Map{
		"success":           true,
		string(kind) + "Id": result.ID,
		"newScore":          result.NewScore,
		"isShown":           result.IsShown,
	}
}
