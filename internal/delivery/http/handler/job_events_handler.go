package handler

import (
	"job-match/internal/delivery/http/dto"
	"job-match/internal/pkg/response"
	"job-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobEventsHandler struct {
	uc usecase.JobEventsUsecase
}

func NewJobEventsHandler(uc usecase.JobEventsUsecase) *JobEventsHandler {
	return &JobEventsHandler{uc: uc}
}

func (h *JobEventsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/jobs/:job_id/refresh", h.Refresh)
}

// Refresh queues a re-rank of the job's candidates; the worker does the work.
func (h *JobEventsHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshJobRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}

	evt, err := h.uc.RequestRefresh(c.Context(), c.Params("job_id"), req.MinPercentage)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.FromJobPublished(evt))
}
