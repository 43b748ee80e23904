package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-match/internal/domain/match"
	"job-match/internal/repository"
)

type JobEventPublisher interface {
	PublishJobPublished(ctx context.Context, evt match.JobPublished) error
}

type JobEventsUsecase interface {
	RequestRefresh(ctx context.Context, jobID string, minPercentage *int) (match.JobPublished, error)
}

type JobEvents struct {
	jobs      repository.JobRequirementRepository
	publisher JobEventPublisher
}

func NewJobEventsUsecase(jobs repository.JobRequirementRepository, publisher JobEventPublisher) *JobEvents {
	return &JobEvents{jobs: jobs, publisher: publisher}
}

// RequestRefresh queues a re-rank of the job's candidates for the worker.
func (u *JobEvents) RequestRefresh(ctx context.Context, jobID string, minPercentage *int) (match.JobPublished, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return match.JobPublished{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	if minPercentage != nil && (*minPercentage < 0 || *minPercentage > 100) {
		return match.JobPublished{}, fmt.Errorf("%w: min percentage %d outside 0-100", ErrInvalidInput, *minPercentage)
	}
	if u.publisher == nil {
		return match.JobPublished{}, ErrPublishUnavailable
	}

	if u.jobs != nil {
		if _, err := u.jobs.FindByID(ctx, jobID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return match.JobPublished{}, ErrJobNotFound
			}
			return match.JobPublished{}, fmt.Errorf("%w: load job: %w", ErrInternal, err)
		}
	}

	evt := match.NewJobPublished(jobID, minPercentage)
	if err := u.publisher.PublishJobPublished(ctx, evt); err != nil {
		return match.JobPublished{}, fmt.Errorf("%w: publish: %w", ErrInternal, err)
	}
	return evt, nil
}
