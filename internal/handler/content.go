package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/joebaillie21/daycipe.io/internal/middleware"
	"github.com/joebaillie21/daycipe.io/internal/model"
	"github.com/joebaillie21/daycipe.io/internal/service"
)

type ContentHandler struct {
	svc *service.ContentService
}

func NewContentHandler(svc *service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// List handles GET /api/{kind}s — every item of a kind, hidden included.
func (h *ContentHandler) List(kind model.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		var (
			result any
			err    error
		)
		switch kind {
		case model.KindFact:
			result, err = h.svc.ListFacts(c.Context())
		case model.KindJoke:
			result, err = h.svc.ListJokes(c.Context())
		case model.KindRecipe:
			result, err = h.svc.ListRecipes(c.Context())
		}
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
				fmt.Sprintf("Failed to get %ss", kind))
		}
		return c.JSON(result)
	}
}

// Today handles GET /api/{kind}s/today?date=&category= — the item(s)
// resolved for the requested (default: current) date. category=all
// returns the best shown item per category for categorized kinds.
func (h *ContentHandler) Today(kind model.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		date, msg := queryDate(c)
		if msg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_DATE", msg)
		}

		category, msg := middleware.ValidateCategory(fiber.Query[string](c, "category"))
		if msg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CATEGORY", msg)
		}

		var (
			result any
			err    error
		)
		switch {
		case kind == model.KindFact && category == service.AllCategories:
			var facts []model.Fact
			facts, err = h.svc.TodayFactsAllCategories(c.Context(), date)
			if err == nil && len(facts) == 0 {
				err = model.ErrNotFound
			}
			result = facts
		case kind == model.KindFact:
			result, err = h.svc.TodayFact(c.Context(), date, category)
		case kind == model.KindJoke:
			result, err = h.svc.TodayJoke(c.Context(), date)
		case kind == model.KindRecipe && category == service.AllCategories:
			var recipes []model.Recipe
			recipes, err = h.svc.TodayRecipesAllCategories(c.Context(), date)
			if err == nil && len(recipes) == 0 {
				err = model.ErrNotFound
			}
			result = recipes
		case kind == model.KindRecipe:
			result, err = h.svc.TodayRecipe(c.Context(), date, category)
		}

		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
				fmt.Sprintf("No %s of the day found", kind))
		}
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
				fmt.Sprintf("Failed to get %ss", kind))
		}
		return c.JSON(result)
	}
}

// Create handles POST /api/{kind}s/create.
func (h *ContentHandler) Create(kind model.Kind) fiber.Handler {
	switch kind {
	case model.KindFact:
		return h.createFact
	case model.KindJoke:
		return h.createJoke
	default:
		return h.createRecipe
	}
}

func (h *ContentHandler) createFact(c fiber.Ctx) error {
	var body struct {
		Fact *model.CreateFactRequest `json:"fact"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if body.Fact == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD", "Request does not contain fact data")
	}
	req := body.Fact

	if msg := firstMissing(map[string]string{
		"date": req.Date, "content": req.Content, "source": req.Source,
	}, "date", "content", "source"); msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD", msg)
	}

	date, msg := middleware.ValidateDate(req.Date)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_DATE", msg)
	}
	category, msg := middleware.ValidateCategory(req.Category)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CATEGORY", msg)
	}

	id, err := h.svc.CreateFact(c.Context(), date, req.Content, req.Source, category)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create fact")
	}
	return c.JSON(fiber.Map{"factId": id})
}

func (h *ContentHandler) createJoke(c fiber.Ctx) error {
	var body struct {
		Joke *model.CreateJokeRequest `json:"joke"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if body.Joke == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD", "Request does not contain joke data")
	}
	req := body.Joke

	if msg := firstMissing(map[string]string{
		"date": req.Date, "content": req.Content,
	}, "date", "content"); msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD", msg)
	}

	date, msg := middleware.ValidateDate(req.Date)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_DATE", msg)
	}

	id, err := h.svc.CreateJoke(c.Context(), date, req.Content)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create joke")
	}
	return c.JSON(fiber.Map{"jokeId": id})
}

func (h *ContentHandler) createRecipe(c fiber.Ctx) error {
	var body struct {
		Recipe *model.CreateRecipeRequest `json:"recipe"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if body.Recipe == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD", "Request does not contain recipe data")
	}
	req := body.Recipe

	if req.Date == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD", "Missing required key: date")
	}
	if req.Content.Title == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD", "Missing required key: content")
	}
	if req.Category == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELD", "Missing required key: category")
	}

	date, msg := middleware.ValidateDate(req.Date)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_DATE", msg)
	}
	category, msg := middleware.ValidateCategory(req.Category)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CATEGORY", msg)
	}

	id, err := h.svc.CreateRecipe(c.Context(), date, req.Content, category)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create recipe")
	}
	return c.JSON(fiber.Map{"recipeId": id})
}

// Range handles GET /api/content/range?startDate=&endDate= — all shown
// items of every kind for the inclusive range, with per-kind counts.
func (h *ContentHandler) Range(c fiber.Ctx) error {
	rawStart := fiber.Query[string](c, "startDate")
	if rawStart == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_PARAM",
			"Valid startDate parameter is required (YYYY-MM-DD)")
	}
	start, msg := middleware.ValidateDate(rawStart)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_DATE", msg)
	}

	end := time.Time{}
	if rawEnd := fiber.Query[string](c, "endDate"); rawEnd != "" {
		end, msg = middleware.ValidateDate(rawEnd)
		if msg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_DATE", msg)
		}
	}

	content, err := h.svc.RangeAll(c.Context(), start, end)
	if errors.Is(err, model.ErrInvalidArgument) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_RANGE",
			"endDate cannot be earlier than startDate")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get content")
	}

	if end.IsZero() {
		end = start
	}
	return c.JSON(fiber.Map{
		"dateRange": fiber.Map{
			"startDate": start.Format("2006-01-02"),
			"endDate":   end.Format("2006-01-02"),
		},
		"content": content,
		"counts": fiber.Map{
			"facts":   len(content.Facts),
			"jokes":   len(content.Jokes),
			"recipes": len(content.Recipes),
			"total":   len(content.Facts) + len(content.Jokes) + len(content.Recipes),
		},
	})
}

// queryDate parses the optional date query parameter, defaulting to the
// current UTC day.
func queryDate(c fiber.Ctx) (time.Time, string) {
	raw := fiber.Query[string](c, "date")
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), ""
	}
	return middleware.ValidateDate(raw)
}

// firstMissing returns a validation message naming the first empty field
// in the given order.
func firstMissing(fields map[string]string, order ...string) string {
	for _, name := range order {
		if fields[name] == "" {
			return "Missing required key: " + name
		}
	}
	return ""
}
