package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"clouddocs/internal/collection"
	"clouddocs/internal/config"
	"clouddocs/internal/docstore"
	"clouddocs/internal/http/middleware"
)

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches the HTTP routes to the provided Fiber app. All
// document routes sit behind session authentication; owner scoping happens in
// the handlers.
func RegisterRoutes(app *fiber.App, db *sql.DB, store docstore.Store, colls *collection.Manager, cfg *config.AppConfig) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	auth := middleware.Authenticate([]byte(cfg.Auth.JWTSecret))

	docs := app.Group("/documents", auth)
	docs.Get("/", ListDocuments(colls))
	docs.Post("/", UploadDocument(store, colls, cfg.Upload))
	docs.Get("/:id", GetDocument(store))
	docs.Get("/:id/content", StreamDocument(store))
	docs.Get("/:id/download", DownloadDocument(store, cfg.Upload.PresignExpirySec))
	docs.Delete("/:id", DeleteDocument(colls))

	app.Get("/storage/stats", auth, StorageStats(colls, cfg.Upload.QuotaBytes))
}
