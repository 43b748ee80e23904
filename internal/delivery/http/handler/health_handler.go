package handler

import (
	"context"
	"time"

	"job-match/internal/delivery/http/dto"
	"job-match/internal/domain"
	"job-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	app   string
	env   string
	db    Pinger
	redis Pinger
}

// NewHealthHandler takes nil pingers for dependencies that are not configured.
func NewHealthHandler(app, env string, db, redis Pinger) *HealthHandler {
	return &HealthHandler{app: app, env: env, db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	st := domain.ServiceStatus{
		App:             h.app,
		Environment:     h.env,
		DatabaseHealthy: ping(ctx, h.db),
		RedisHealthy:    ping(ctx, h.redis),
		ServerTime:      time.Now(),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromServiceStatus(st, h.db != nil, h.redis != nil))
}

func ping(ctx context.Context, p Pinger) bool {
	return p != nil && p.Ping(ctx) == nil
}
