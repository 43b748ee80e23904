package handler

import (
	"errors"
	"strconv"

	"job-match/internal/delivery/http/dto"
	"job-match/internal/delivery/http/middleware"
	"job-match/internal/pkg/response"
	"job-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrStoreUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Store not configured", nil, err)
	case errors.Is(err, usecase.ErrPublishUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Event publishing not configured", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func bindBody(c fiber.Ctx, req interface{ Validate() error }) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", dto.ValidationErrors(err), err)
	}
	return nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

// resolveMin picks the request threshold over the configured default.
func resolveMin(requested *int, defaultMin int) int {
	if requested != nil {
		return *requested
	}
	return defaultMin
}
