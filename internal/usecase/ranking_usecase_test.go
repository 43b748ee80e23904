package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"job-match/internal/config"
	"job-match/internal/domain/match"
	"job-match/internal/domain/matching"
	"job-match/internal/repository"
)

type mockCandidateRepo struct {
	items []repository.Candidate
	err   error
}

func (m mockCandidateRepo) FindByID(_ context.Context, id string) (repository.Candidate, error) {
	if m.err != nil {
		return repository.Candidate{}, m.err
	}
	for _, c := range m.items {
		if c.ID == id {
			return c, nil
		}
	}
	return repository.Candidate{}, repository.ErrNotFound
}

func (m mockCandidateRepo) List(_ context.Context, limit, offset int) ([]repository.Candidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	if offset >= len(m.items) {
		return []repository.Candidate{}, nil
	}
	end := offset + limit
	if end > len(m.items) {
		end = len(m.items)
	}
	return m.items[offset:end], nil
}

type mockJobRequirementRepo struct {
	items []repository.JobRequirement
}

func (m mockJobRequirementRepo) FindByID(_ context.Context, id string) (repository.JobRequirement, error) {
	for _, j := range m.items {
		if j.ID == id {
			return j, nil
		}
	}
	return repository.JobRequirement{}, repository.ErrNotFound
}

func (m mockJobRequirementRepo) ListActive(_ context.Context, limit, offset int) ([]repository.JobRequirement, error) {
	if offset >= len(m.items) {
		return []repository.JobRequirement{}, nil
	}
	end := offset + limit
	if end > len(m.items) {
		end = len(m.items)
	}
	return m.items[offset:end], nil
}

type mockJobMatchRepo struct {
	jobID   string
	matches []repository.JobMatchUpsert
	err     error
}

func (m *mockJobMatchRepo) ReplaceForJob(_ context.Context, jobID string, matches []repository.JobMatchUpsert) error {
	m.jobID = jobID
	m.matches = matches
	return m.err
}

type memoryCache struct {
	data    map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

func storedCandidates() []repository.Candidate {
	return []repository.Candidate{
		{
			ID:                "strong",
			TechnicalSkills:   []string{"Go", "PostgreSQL"},
			SoftSkills:        []string{"teamwork", "communication"},
			Department:        "Computer Science and Engineering",
			PortfolioProjects: []repository.PortfolioProject{{Title: "matcher"}},
			ClubExperience:    strPtr("chess club"),
			PersonalityScores: map[string]float64{"extraversion": 4, "agreeableness": 4},
		},
		{
			ID:              "weak",
			TechnicalSkills: []string{"React"},
			SoftSkills:      []string{"teamwork"},
		},
	}
}

func storedJobs() []repository.JobRequirement {
	return []repository.JobRequirement{
		{
			ID:                "backend",
			RequiredTechnical: []string{"go", "postgresql"},
			RequiredSoft:      []string{"teamwork", "communication"},
			RequiredEducation: "computer science",
		},
		{
			ID:                "frontend",
			RequiredTechnical: []string{"React", "TypeScript"},
			RequiredSoft:      []string{"creativity"},
		},
	}
}

func newTestRanking(cache MatchCache, matches repository.JobMatchRepository) *Ranking {
	return NewRankingUsecase(
		mockCandidateRepo{items: storedCandidates()},
		mockJobRequirementRepo{items: storedJobs()},
		matches,
		NewMatchingUsecase(config.MatchingConfig{Workers: 1}),
		cache,
		nil,
	)
}

func TestRanking_RankCandidatesForJob(t *testing.T) {
	uc := newTestRanking(nil, nil)

	out, err := uc.RankCandidatesForJob(context.Background(), "backend", RankParams{MinPercentage: 50})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if out[0].CandidateID != "strong" || out[0].MatchPercentage != 86 {
		t.Fatalf("unexpected result: %+v", out[0])
	}
}

func TestRanking_RankJobsForCandidate_SortedAndLimited(t *testing.T) {
	uc := newTestRanking(nil, nil)

	out, err := uc.RankJobsForCandidate(context.Background(), "strong", RankParams{MinPercentage: 0, Limit: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(out))
	}
	if out[0].JobID != "backend" {
		t.Fatalf("expected best job first, got %s", out[0].JobID)
	}
}

func TestRanking_PagesThroughLargeStore(t *testing.T) {
	const filler = 50000
	items := make([]repository.Candidate, 0, filler+1)
	for i := 0; i < filler; i++ {
		items = append(items, repository.Candidate{
			ID:              fmt.Sprintf("filler-%05d", i),
			TechnicalSkills: []string{"COBOL"},
		})
	}
	items = append(items, storedCandidates()[0])

	matches := &mockJobMatchRepo{}
	uc := NewRankingUsecase(
		mockCandidateRepo{items: items},
		mockJobRequirementRepo{items: storedJobs()},
		matches,
		NewMatchingUsecase(config.MatchingConfig{Workers: 1}),
		nil,
		nil,
	)

	out, err := uc.RankCandidatesForJob(context.Background(), "backend", RankParams{MinPercentage: 50})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].CandidateID != "strong" || out[0].MatchPercentage != 86 {
		t.Fatalf("expected candidate past the last full page to rank, got %+v", out)
	}

	n, err := uc.RefreshJobMatches(context.Background(), "backend", 50)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 1 || len(matches.matches) != 1 || matches.matches[0].CandidateID != "strong" {
		t.Fatalf("expected strong candidate persisted, got n=%d %+v", n, matches.matches)
	}
}

func TestRanking_NotFound(t *testing.T) {
	uc := newTestRanking(nil, nil)

	if _, err := uc.RankJobsForCandidate(context.Background(), "nobody", RankParams{}); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
	if _, err := uc.RankCandidatesForJob(context.Background(), "nojob", RankParams{}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestRanking_StoreUnavailable(t *testing.T) {
	uc := NewRankingUsecase(nil, nil, nil, NewMatchingUsecase(config.MatchingConfig{}), nil, nil)

	if _, err := uc.RankCandidatesForJob(context.Background(), "backend", RankParams{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestRanking_RepositoryErrorIsInternal(t *testing.T) {
	uc := NewRankingUsecase(
		mockCandidateRepo{err: errors.New("db down")},
		mockJobRequirementRepo{items: storedJobs()},
		nil,
		NewMatchingUsecase(config.MatchingConfig{}),
		nil,
		nil,
	)

	if _, err := uc.RankCandidatesForJob(context.Background(), "backend", RankParams{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestRanking_UsesCache(t *testing.T) {
	cache := newMemoryCache()
	uc := newTestRanking(cache, nil)
	params := NormalizeRankParams(RankParams{MinPercentage: 50})

	first, err := uc.RankCandidatesForJob(context.Background(), "backend", params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := cache.data[RankedCandidatesCacheKey("backend", params)]; !ok {
		t.Fatalf("expected result to be cached")
	}

	seeded := []matching.MatchResult{{CandidateID: "from-cache", JobID: "backend", MatchPercentage: 99}}
	_ = cache.SetJSON(context.Background(), RankedCandidatesCacheKey("backend", params), seeded, 0)

	second, err := uc.RankCandidatesForJob(context.Background(), "backend", params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(second) != 1 || second[0].CandidateID != "from-cache" {
		t.Fatalf("expected cached result, got %+v (first %+v)", second, first)
	}
}

func TestRanking_RefreshJobMatches(t *testing.T) {
	cache := newMemoryCache()
	matches := &mockJobMatchRepo{}
	uc := newTestRanking(cache, matches)

	_ = cache.SetJSON(context.Background(), "match:candidates:backend:50:20", []matching.MatchResult{}, 0)
	_ = cache.SetJSON(context.Background(), "match:jobs:strong:50:20", []matching.MatchResult{}, 0)

	n, err := uc.RefreshJobMatches(context.Background(), "backend", 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 2 || len(matches.matches) != 2 {
		t.Fatalf("expected 2 persisted matches, got n=%d persisted=%d", n, len(matches.matches))
	}
	if matches.jobID != "backend" || matches.matches[0].CandidateID != "strong" {
		t.Fatalf("unexpected persisted matches: %+v", matches.matches)
	}
	if len(cache.data) != 0 {
		t.Fatalf("expected cache invalidated, left %v", cache.data)
	}
}

func TestRanking_RefreshJobMatches_InvalidThreshold(t *testing.T) {
	uc := newTestRanking(nil, &mockJobMatchRepo{})

	if _, err := uc.RefreshJobMatches(context.Background(), "backend", 120); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestInvalidateRankings(t *testing.T) {
	cache := newMemoryCache()
	ctx := context.Background()
	_ = cache.SetJSON(ctx, "match:jobs:strong:50:20", []matching.MatchResult{}, 0)
	_ = cache.SetJSON(ctx, "match:candidates:backend:50:20", []matching.MatchResult{}, 0)
	_ = cache.SetJSON(ctx, "session:abc", "keep", 0)

	if err := InvalidateRankings(ctx, cache); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cache.data) != 1 {
		t.Fatalf("expected only unrelated key left, got %v", cache.data)
	}
	if _, ok := cache.data["session:abc"]; !ok {
		t.Fatalf("unrelated key was dropped")
	}

	if err := InvalidateRankings(ctx, nil); err != nil {
		t.Fatalf("nil cache should be a no-op, got %v", err)
	}
}

func TestNormalizeRankParams(t *testing.T) {
	p := NormalizeRankParams(RankParams{MinPercentage: -5, Limit: 500})
	if p.MinPercentage != 0 || p.Limit != maxRankLimit {
		t.Fatalf("unexpected params: %+v", p)
	}
	p = NormalizeRankParams(RankParams{MinPercentage: 70})
	if p.Limit != defaultRankLimit || p.MinPercentage != 70 {
		t.Fatalf("unexpected params: %+v", p)
	}
}

type recordingPublisher struct {
	events []match.JobPublished
	err    error
}

func (p *recordingPublisher) PublishJobPublished(_ context.Context, evt match.JobPublished) error {
	p.events = append(p.events, evt)
	return p.err
}

func TestJobEvents_RequestRefresh(t *testing.T) {
	pub := &recordingPublisher{}
	uc := NewJobEventsUsecase(mockJobRequirementRepo{items: storedJobs()}, pub)
	threshold := 60

	evt, err := uc.RequestRefresh(context.Background(), "backend", &threshold)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].JobID != "backend" || *pub.events[0].MinPercentage != 60 {
		t.Fatalf("unexpected published events: %+v", pub.events)
	}
	if evt.Type != match.EventTypeJobPublished {
		t.Fatalf("unexpected event type %q", evt.Type)
	}

	if _, err := uc.RequestRefresh(context.Background(), "nojob", nil); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := NewJobEventsUsecase(nil, nil).RequestRefresh(context.Background(), "backend", nil); !errors.Is(err, ErrPublishUnavailable) {
		t.Fatalf("expected ErrPublishUnavailable, got %v", err)
	}
}
