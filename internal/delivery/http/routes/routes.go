package routes

import (
	"job-match/internal/delivery/http/handler"
	v1 "job-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers) *Registry {
	return &Registry{health: health, v1: handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1)
}
