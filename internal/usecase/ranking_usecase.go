package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-match/internal/domain/matching"
	"job-match/internal/logger"
	"job-match/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultRankLimit = 20
	maxRankLimit     = 100
	storePageSize    = 500
)

type RankParams struct {
	MinPercentage int
	Limit         int
}

type RankingUsecase interface {
	RankJobsForCandidate(ctx context.Context, candidateID string, params RankParams) ([]matching.MatchResult, error)
	RankCandidatesForJob(ctx context.Context, jobID string, params RankParams) ([]matching.MatchResult, error)
	RefreshJobMatches(ctx context.Context, jobID string, minPercentage int) (int, error)
}

// Ranking ranks entities held in the store. It needs repositories; the cache
// is optional.
type Ranking struct {
	candidates repository.CandidateRepository
	jobs       repository.JobRequirementRepository
	matches    repository.JobMatchRepository
	matcher    MatchingUsecase
	cache      MatchCache
	logger     *zap.Logger
}

func NewRankingUsecase(
	candidates repository.CandidateRepository,
	jobs repository.JobRequirementRepository,
	matches repository.JobMatchRepository,
	matcher MatchingUsecase,
	cache MatchCache,
	log *zap.Logger,
) *Ranking {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ranking{
		candidates: candidates,
		jobs:       jobs,
		matches:    matches,
		matcher:    matcher,
		cache:      cache,
		logger:     log.Named("ranking"),
	}
}

func NormalizeRankParams(p RankParams) RankParams {
	if p.Limit <= 0 {
		p.Limit = defaultRankLimit
	}
	if p.Limit > maxRankLimit {
		p.Limit = maxRankLimit
	}
	if p.MinPercentage < 0 {
		p.MinPercentage = 0
	}
	if p.MinPercentage > 100 {
		p.MinPercentage = 100
	}
	return p
}

func (u *Ranking) RankJobsForCandidate(ctx context.Context, candidateID string, params RankParams) ([]matching.MatchResult, error) {
	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" {
		return nil, fmt.Errorf("%w: candidate id is required", ErrInvalidInput)
	}
	if u.candidates == nil || u.jobs == nil {
		return nil, ErrStoreUnavailable
	}
	params = NormalizeRankParams(params)

	key := RankedJobsCacheKey(candidateID, params)
	if cached, ok := u.cached(ctx, key); ok {
		return cached, nil
	}

	rc, err := u.candidates.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("%w: load candidate: %w", ErrInternal, err)
	}

	jobs, err := u.allJobs(ctx)
	if err != nil {
		return nil, err
	}

	out, err := u.matcher.RankJobs(ctx, candidateFromRepository(rc), jobs, params.MinPercentage)
	if err != nil {
		return nil, err
	}
	out = truncate(out, params.Limit)

	u.store(ctx, key, out)
	return out, nil
}

func (u *Ranking) RankCandidatesForJob(ctx context.Context, jobID string, params RankParams) ([]matching.MatchResult, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	if u.candidates == nil || u.jobs == nil {
		return nil, ErrStoreUnavailable
	}
	params = NormalizeRankParams(params)

	key := RankedCandidatesCacheKey(jobID, params)
	if cached, ok := u.cached(ctx, key); ok {
		return cached, nil
	}

	out, err := u.rankAllCandidates(ctx, jobID, params.MinPercentage)
	if err != nil {
		return nil, err
	}
	out = truncate(out, params.Limit)

	u.store(ctx, key, out)
	return out, nil
}

// RefreshJobMatches re-ranks every stored candidate for jobID, replaces the
// persisted matches and drops cached lists the job appears in.
func (u *Ranking) RefreshJobMatches(ctx context.Context, jobID string, minPercentage int) (int, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return 0, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	if u.candidates == nil || u.jobs == nil || u.matches == nil {
		return 0, ErrStoreUnavailable
	}
	if minPercentage < 0 || minPercentage > 100 {
		return 0, fmt.Errorf("%w: min percentage %d outside 0-100", ErrInvalidInput, minPercentage)
	}

	out, err := u.rankAllCandidates(ctx, jobID, minPercentage)
	if err != nil {
		return 0, err
	}

	if err := u.matches.ReplaceForJob(ctx, jobID, matchUpsertsFromResults(out)); err != nil {
		return 0, fmt.Errorf("%w: persist matches: %w", ErrInternal, err)
	}

	if u.cache != nil {
		for _, p := range jobInvalidationPatterns(jobID) {
			if err := u.cache.DeleteByPattern(ctx, p); err != nil {
				u.logger.Warn("cache invalidation failed", zap.String("pattern", p), zap.Error(err))
			}
		}
	}

	u.logger.Info("job matches refreshed",
		zap.String("job_id", jobID),
		zap.Int("matches", len(out)),
		zap.Int("min_percentage", minPercentage),
	)
	if len(out) > 0 {
		u.logger.Debug("top match",
			zap.String("candidate_id", out[0].CandidateID),
			zap.Int("match_percentage", out[0].MatchPercentage),
			logger.Reasons(out[0].Reasons, 5),
		)
	}
	return len(out), nil
}

func (u *Ranking) rankAllCandidates(ctx context.Context, jobID string, minPercentage int) ([]matching.MatchResult, error) {
	rj, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("%w: load job: %w", ErrInternal, err)
	}

	candidates, err := u.allCandidates(ctx)
	if err != nil {
		return nil, err
	}

	return u.matcher.RankCandidates(ctx, jobFromRepository(rj), candidates, minPercentage)
}

// allCandidates pages through the store until a short page comes back.
func (u *Ranking) allCandidates(ctx context.Context) ([]matching.CandidateProfile, error) {
	out := make([]matching.CandidateProfile, 0, storePageSize)
	for offset := 0; ; offset += storePageSize {
		page, err := u.candidates.List(ctx, storePageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("%w: list candidates: %w", ErrInternal, err)
		}
		for _, c := range page {
			out = append(out, candidateFromRepository(c))
		}
		if len(page) < storePageSize {
			break
		}
	}
	return out, nil
}

func (u *Ranking) allJobs(ctx context.Context) ([]matching.JobRequirement, error) {
	out := make([]matching.JobRequirement, 0, storePageSize)
	for offset := 0; ; offset += storePageSize {
		page, err := u.jobs.ListActive(ctx, storePageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("%w: list jobs: %w", ErrInternal, err)
		}
		for _, j := range page {
			out = append(out, jobFromRepository(j))
		}
		if len(page) < storePageSize {
			break
		}
	}
	return out, nil
}

func (u *Ranking) cached(ctx context.Context, key string) ([]matching.MatchResult, bool) {
	if u.cache == nil {
		return nil, false
	}
	var out []matching.MatchResult
	hit, err := u.cache.GetJSON(ctx, key, &out)
	if err != nil {
		u.logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !hit {
		return nil, false
	}
	if out == nil {
		out = []matching.MatchResult{}
	}
	return out, true
}

func (u *Ranking) store(ctx context.Context, key string, results []matching.MatchResult) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, results, 0); err != nil {
		u.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func truncate(results []matching.MatchResult, limit int) []matching.MatchResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
