package middleware

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/joebaillie21/daycipe.io/internal/model"
)

// Field limits matching database schema expectations.
const (
	MaxCategoryLen = 32
	MaxContentLen  = 4000
	MaxSourceLen   = 256
)

var (
	// dateRe matches the YYYY-MM-DD wire format before the stricter
	// calendar parse runs.
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// categoryRe matches category tags: lowercase words, digits, dash,
	// underscore.
	categoryRe = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// ErrorResponse returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateContentID parses a route id segment into a positive integer.
// Returns a non-empty message on failure.
func ValidateContentID(raw string) (int64, string) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, "id must be a positive integer"
	}
	return id, ""
}

// ValidateDate parses a YYYY-MM-DD date string.
func ValidateDate(raw string) (time.Time, string) {
	raw = strings.TrimSpace(raw)
	if !dateRe.MatchString(raw) {
		return time.Time{}, "date must be in YYYY-MM-DD format"
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, "date is not a valid calendar date"
	}
	return date, ""
}

// ValidateCategory normalizes and checks a category tag. Empty input is
// allowed; callers decide the default.
func ValidateCategory(raw string) (string, string) {
	category := strings.TrimSpace(strings.ToLower(raw))
	if category == "" {
		return "", ""
	}
	if len(category) > MaxCategoryLen {
		return "", "category must be at most 32 characters"
	}
	if !categoryRe.MatchString(category) {
		return "", "category contains invalid characters"
	}
	return category, ""
}

// ValidateKind checks a content kind route segment, accepting both
// singular and plural forms ("fact", "facts").
func ValidateKind(raw string) (model.Kind, string) {
	kind := model.Kind(strings.TrimSuffix(strings.TrimSpace(strings.ToLower(raw)), "s"))
	if !kind.Valid() {
		return "", "content kind must be one of: fact, joke, recipe"
	}
	return kind, ""
}
