package routes

import (
	"taxonomy-indexer/internal/delivery/http/handler"
	"taxonomy-indexer/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	reindex *handler.ReindexHandler
	auth    *middleware.AuthMiddleware
}

func NewRegistry(health *handler.HealthHandler, reindex *handler.ReindexHandler, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{health: health, reindex: reindex, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	// Health stays public for load balancer probes.
	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1", r.auth.Middleware())
	r.reindex.RegisterRoutes(v1)
}
