package v1

import (
	"job-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Match     *handler.MatchHandler
	Ranking   *handler.RankingHandler
	JobEvents *handler.JobEventsHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Match != nil {
		h.Match.RegisterRoutes(r)
	}
	if h.Ranking != nil {
		h.Ranking.RegisterRoutes(r)
	}
	if h.JobEvents != nil {
		h.JobEvents.RegisterRoutes(r)
	}
}
