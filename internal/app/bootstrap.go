package app

import (
	"context"
	"fmt"
	"strings"

	"job-match/internal/config"
	"job-match/internal/delivery/http/handler"
	"job-match/internal/delivery/http/middleware"
	"job-match/internal/delivery/http/routes"
	v1 "job-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New wires the HTTP surface around an already built container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger, ContainerOptions{Publisher: true})
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	var dbPinger, redisPinger handler.Pinger
	if c.DB != nil {
		dbPinger = c.DB
	}
	if c.Cache != nil {
		redisPinger = c.Cache
	}

	minPct := c.Config.Matching.MinPercentage
	reg := routes.NewRegistry(
		handler.NewHealthHandler(c.Config.App.AppName, c.Config.App.Environment, dbPinger, redisPinger),
		v1.Handlers{
			Match:     handler.NewMatchHandler(c.Matching, minPct),
			Ranking:   handler.NewRankingHandler(c.Ranking, minPct),
			JobEvents: handler.NewJobEventsHandler(c.JobEvents),
		},
	)
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
