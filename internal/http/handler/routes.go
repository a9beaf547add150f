package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studynotes/internal/http/middleware"
	"studynotes/internal/service"
)

// Dependencies are the collaborators the routes are wired to.
type Dependencies struct {
	DB          *sql.DB
	Notes       service.NoteService
	Entitlement service.EntitlementService
	Payments    service.PaymentService
	Viewer      *Viewer
	// Gatherer backs /metrics; nil leaves the endpoint unregistered.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// middleware.Identify must already be installed on app.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", Liveness())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	requireID := middleware.RequireIdentity()

	api := app.Group("/api")
	api.Get("/notes", ListNotes(d.Notes))
	api.Get("/notes/subjects", ListSubjects(d.Notes))
	api.Post("/notes", requireID, UploadNote(d.Notes))
	api.Get("/notes/:id", GetNote(d.Notes))
	api.Delete("/notes/:id", requireID, DeleteNote(d.Notes))

	api.Get("/entitlement", CheckEntitlement(d.Entitlement))
	api.Post("/payments/checkout", requireID, Checkout(d.Payments))
	api.Post("/payments/confirm", requireID, ConfirmPayment(d.Payments))
	api.Get("/payments/status", PaymentStatus(d.Payments))

	// The reveal form rides on the session cookie, so cross-site posts are refused.
	lib := app.Group("/library", middleware.SameOrigin())
	lib.Get("/:id", d.Viewer.Show())
	lib.Post("/:id/reveal", d.Viewer.Reveal())
	lib.Get("/:id/content", d.Viewer.Content())
}
