package handler

import (
	"job-match/internal/delivery/http/dto"
	"job-match/internal/pkg/response"
	"job-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// MatchHandler scores profiles supplied inline in the request body.
type MatchHandler struct {
	uc         usecase.MatchingUsecase
	defaultMin int
}

func NewMatchHandler(uc usecase.MatchingUsecase, defaultMin int) *MatchHandler {
	return &MatchHandler{uc: uc, defaultMin: defaultMin}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match", h.Match)

	grp := r.Group("/rank")
	grp.Post("/jobs", h.RankJobs)
	grp.Post("/candidates", h.RankCandidates)
}

func (h *MatchHandler) Match(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Match(c.Context(), req.Candidate.ToDomain(), req.Job.ToDomain())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMatchResult(res))
}

func (h *MatchHandler) RankJobs(c fiber.Ctx) error {
	var req dto.RankJobsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	threshold := resolveMin(req.MinPercentage, h.defaultMin)
	out, err := h.uc.RankJobs(c.Context(), req.Candidate.ToDomain(), dto.JobsToDomain(req.Jobs), threshold)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, dto.FromMatchResults(out), response.Meta{Count: len(out), MinPercentage: &threshold})
}

func (h *MatchHandler) RankCandidates(c fiber.Ctx) error {
	var req dto.RankCandidatesRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	threshold := resolveMin(req.MinPercentage, h.defaultMin)
	out, err := h.uc.RankCandidates(c.Context(), req.Job.ToDomain(), dto.CandidatesToDomain(req.Candidates), threshold)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, dto.FromMatchResults(out), response.Meta{Count: len(out), MinPercentage: &threshold})
}
