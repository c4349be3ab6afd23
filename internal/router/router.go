package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/joebaillie21/daycipe.io/internal/handler"
	"github.com/joebaillie21/daycipe.io/internal/middleware"
	"github.com/joebaillie21/daycipe.io/internal/model"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Content *handler.ContentHandler
	Vote    *handler.VoteHandler
	Report  *handler.ReportHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// kindRoutes maps each kind to its route prefix.
var kindRoutes = map[model.Kind]string{
	model.KindFact:   "/facts",
	model.KindJoke:   "/jokes",
	model.KindRecipe: "/recipes",
}

// Setup configures the middleware stack and all API routes on the given
// Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.NewMetricsMiddleware())

	// Probes and metrics (outside the API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	contentLimit := middleware.NewContentRateLimiter().Handler()
	voteLimit := middleware.NewVoteRateLimiter().Handler()
	createLimit := middleware.NewCreateRateLimiter().Handler()
	reportLimit := middleware.NewReportRateLimiter().Handler()

	api := app.Group("/api")

	for _, kind := range model.Kinds {
		g := api.Group(kindRoutes[kind])
		g.Get("/", h.Content.List(kind), contentLimit)
		g.Get("/today", h.Content.Today(kind), contentLimit)
		g.Post("/create", h.Content.Create(kind), createLimit)
		g.Post("/:id/upvote", h.Vote.Upvote(kind), voteLimit)
		g.Post("/:id/downvote", h.Vote.Downvote(kind), voteLimit)
		g.Post("/:id/vote", h.Vote.Toggle(kind), voteLimit)
	}

	api.Get("/content/range", h.Content.Range, contentLimit)

	reports := api.Group("/reports")
	reports.Get("/", h.Report.List, contentLimit)
	reports.Get("/content/:kind/:id", h.Report.ListForContent, contentLimit)
	reports.Post("/create", h.Report.Create, reportLimit)

	api.Get("/stats", h.Stats.GetStats, contentLimit)
}
