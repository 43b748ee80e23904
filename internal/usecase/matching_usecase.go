package usecase

import (
	"context"
	"errors"
	"fmt"

	"job-match/internal/config"
	"job-match/internal/domain/matching"
	"job-match/internal/pkg/workerpool"
)

type MatchingUsecase interface {
	Match(ctx context.Context, c matching.CandidateProfile, j matching.JobRequirement) (matching.MatchResult, error)
	RankJobs(ctx context.Context, c matching.CandidateProfile, jobs []matching.JobRequirement, minPercentage int) ([]matching.MatchResult, error)
	RankCandidates(ctx context.Context, j matching.JobRequirement, candidates []matching.CandidateProfile, minPercentage int) ([]matching.MatchResult, error)
}

// Matching runs the engine, fanning large batches out over a worker pool.
// Batches below the parallel threshold go through the engine directly.
type Matching struct {
	workers           int
	parallelThreshold int
}

func NewMatchingUsecase(cfg config.MatchingConfig) *Matching {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Matching{workers: workers, parallelThreshold: cfg.ParallelThreshold}
}

func (u *Matching) Match(_ context.Context, c matching.CandidateProfile, j matching.JobRequirement) (matching.MatchResult, error) {
	res, err := matching.Match(c, j)
	if err != nil {
		return matching.MatchResult{}, mapEngineError(err)
	}
	return res, nil
}

func (u *Matching) RankJobs(ctx context.Context, c matching.CandidateProfile, jobs []matching.JobRequirement, minPercentage int) ([]matching.MatchResult, error) {
	if !u.parallel(len(jobs)) {
		out, err := matching.RankJobsForCandidate(c, jobs, minPercentage)
		return out, mapEngineError(err)
	}

	if err := matching.ValidateCandidate(c); err != nil {
		return nil, mapEngineError(err)
	}
	for _, j := range jobs {
		if err := matching.ValidateJob(j); err != nil {
			return nil, mapEngineError(err)
		}
	}
	results := make([]matching.MatchResult, len(jobs))
	err := workerpool.ForEach(ctx, u.workers, len(jobs), func(_ context.Context, i int) error {
		r, err := matching.Match(c, jobs[i])
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, mapEngineError(err)
	}
	return matching.FilterAndSort(results, minPercentage), nil
}

func (u *Matching) RankCandidates(ctx context.Context, j matching.JobRequirement, candidates []matching.CandidateProfile, minPercentage int) ([]matching.MatchResult, error) {
	if !u.parallel(len(candidates)) {
		out, err := matching.RankCandidatesForJob(j, candidates, minPercentage)
		return out, mapEngineError(err)
	}

	if err := matching.ValidateJob(j); err != nil {
		return nil, mapEngineError(err)
	}
	// Validate up front so the reported error is the first invalid
	// candidate in input order, as on the sequential path.
	for _, c := range candidates {
		if err := matching.ValidateCandidate(c); err != nil {
			return nil, mapEngineError(err)
		}
	}
	results := make([]matching.MatchResult, len(candidates))
	err := workerpool.ForEach(ctx, u.workers, len(candidates), func(_ context.Context, i int) error {
		r, err := matching.Match(candidates[i], j)
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, mapEngineError(err)
	}
	return matching.FilterAndSort(results, minPercentage), nil
}

func (u *Matching) parallel(n int) bool {
	return u.workers > 1 && u.parallelThreshold > 0 && n >= u.parallelThreshold
}

func mapEngineError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, matching.ErrInvalidInput) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
