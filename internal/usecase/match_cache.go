package usecase

import (
	"context"
	"fmt"
	"time"
)

type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

func RankedJobsCacheKey(candidateID string, params RankParams) string {
	return fmt.Sprintf("match:jobs:%s:%d:%d", candidateID, params.MinPercentage, params.Limit)
}

func RankedCandidatesCacheKey(jobID string, params RankParams) string {
	return fmt.Sprintf("match:candidates:%s:%d:%d", jobID, params.MinPercentage, params.Limit)
}

const allRankingsPattern = "match:*"

// InvalidateRankings drops every cached ranked list. Bulk profile loads call
// it since any stored candidate or job may have changed.
func InvalidateRankings(ctx context.Context, cache MatchCache) error {
	if cache == nil {
		return nil
	}
	if err := cache.DeleteByPattern(ctx, allRankingsPattern); err != nil {
		return fmt.Errorf("invalidate rankings: %w", err)
	}
	return nil
}

// A job changing affects every candidate's ranked job list, so all of those
// are dropped together with the job's own candidate lists.
func jobInvalidationPatterns(jobID string) []string {
	return []string{
		"match:candidates:" + jobID + ":*",
		"match:jobs:*",
	}
}
