package handler

import (
	"fmt"

	"job-match/internal/delivery/http/dto"
	"job-match/internal/delivery/http/middleware"
	"job-match/internal/domain/matching"
	"job-match/internal/pkg/response"
	"job-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// RankingHandler ranks candidates and jobs already held in the store.
type RankingHandler struct {
	uc         usecase.RankingUsecase
	defaultMin int
}

func NewRankingHandler(uc usecase.RankingUsecase, defaultMin int) *RankingHandler {
	return &RankingHandler{uc: uc, defaultMin: defaultMin}
}

func (h *RankingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/candidates/:candidate_id/jobs", h.JobsForCandidate)
	r.Get("/jobs/:job_id/candidates", h.CandidatesForJob)
}

func (h *RankingHandler) JobsForCandidate(c fiber.Ctx) error {
	params, err := h.rankParams(c)
	if err != nil {
		return err
	}

	out, err := h.uc.RankJobsForCandidate(c.Context(), c.Params("candidate_id"), params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return listResponse(c, out, params)
}

func (h *RankingHandler) CandidatesForJob(c fiber.Ctx) error {
	params, err := h.rankParams(c)
	if err != nil {
		return err
	}

	out, err := h.uc.RankCandidatesForJob(c.Context(), c.Params("job_id"), params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return listResponse(c, out, params)
}

func (h *RankingHandler) rankParams(c fiber.Ctx) (usecase.RankParams, error) {
	minPct, err := parseQueryIntStrict(c, "min_percentage", h.defaultMin)
	if err != nil {
		return usecase.RankParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid min_percentage", nil, err)
	}
	if minPct < 0 || minPct > 100 {
		return usecase.RankParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid min_percentage", nil,
			fmt.Errorf("min_percentage %d outside 0-100", minPct))
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil || limit < 0 {
		return usecase.RankParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}

	return usecase.NormalizeRankParams(usecase.RankParams{MinPercentage: minPct, Limit: limit}), nil
}

func listResponse(c fiber.Ctx, out []matching.MatchResult, params usecase.RankParams) error {
	threshold := params.MinPercentage
	return response.List(c, dto.FromMatchResults(out), response.Meta{
		Count:         len(out),
		MinPercentage: &threshold,
		Limit:         params.Limit,
	})
}
