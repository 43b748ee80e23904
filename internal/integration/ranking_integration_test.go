package integration

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"job-match/internal/app"
	"job-match/internal/config"
	"job-match/internal/database"
	"job-match/internal/database/migration"
	dbpostgres "job-match/internal/database/postgres"
	"job-match/internal/repository"
	"job-match/internal/usecase"
	"job-match/migrations"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type rankedItem struct {
	CandidateID     string   `json:"candidate_id"`
	JobID           string   `json:"job_id"`
	MatchPercentage int      `json:"match_percentage"`
	Reasons         []string `json:"reasons"`
}

type seeded struct {
	prefix   string
	jobID    string
	strongID string
	weakID   string
}

func TestIntegration_StoredRankingAndRefresh(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	if _, err := (migration.Runner{FS: migrations.FS}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	seed := seedProfiles(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	c := newTestContainer(db)
	fapp := app.New(c)

	items := callRanking(t, fapp, "/api/v1/jobs/"+seed.jobID+"/candidates?min_percentage=0&limit=100")
	strongIdx, weakIdx := -1, -1
	for i, it := range items {
		switch it.CandidateID {
		case seed.strongID:
			strongIdx = i
		case seed.weakID:
			weakIdx = i
		}
	}
	if strongIdx < 0 || weakIdx < 0 {
		t.Fatalf("ranking: expected both seeded candidates, got %+v", items)
	}
	if strongIdx > weakIdx {
		t.Fatalf("ranking: expected strong candidate before weak, got idx %d > %d", strongIdx, weakIdx)
	}
	if items[strongIdx].MatchPercentage != 86 {
		t.Fatalf("ranking: expected strong candidate at 86%%, got %d", items[strongIdx].MatchPercentage)
	}
	for i := 1; i < len(items); i++ {
		if items[i].MatchPercentage > items[i-1].MatchPercentage {
			t.Fatalf("ranking: expected descending order at idx=%d", i)
		}
	}

	n, err := c.Ranking.RefreshJobMatches(ctx, seed.jobID, 50)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if n < 1 {
		t.Fatalf("refresh: expected at least one persisted match, got %d", n)
	}

	var stored int
	if err := db.QueryRow(ctx,
		`SELECT match_percentage FROM job_matches WHERE job_id = $1 AND candidate_id = $2`,
		seed.jobID, seed.strongID,
	).Scan(&stored); err != nil {
		t.Fatalf("read persisted match: %v", err)
	}
	if stored != 86 {
		t.Fatalf("persisted match: expected 86, got %d", stored)
	}

	var weakRows int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_matches WHERE job_id = $1 AND candidate_id = $2`,
		seed.jobID, seed.weakID,
	).Scan(&weakRows); err != nil {
		t.Fatalf("count weak matches: %v", err)
	}
	if weakRows != 0 {
		t.Fatalf("persisted match: weak candidate should be below threshold")
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set JOBMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  stringsOrDefault(ssl, "disable"),
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func newTestContainer(db database.DB) *app.Container {
	cfg := config.Config{
		App:      config.AppConfig{AppName: "job-match-test", Environment: "test"},
		Matching: config.MatchingConfig{MinPercentage: 50, Workers: 2, ParallelThreshold: 1},
	}
	matcher := usecase.NewMatchingUsecase(cfg.Matching)
	jobs := repository.NewPostgresJobRequirementRepository(db)
	return &app.Container{
		Config:   cfg,
		Logger:   zap.NewNop(),
		DB:       db,
		Matching: matcher,
		Ranking: usecase.NewRankingUsecase(
			repository.NewPostgresCandidateRepository(db),
			jobs,
			repository.NewPostgresJobMatchRepository(db),
			matcher,
			nil,
			nil,
		),
		JobEvents: usecase.NewJobEventsUsecase(jobs, nil),
	}
}

func seedProfiles(t *testing.T, ctx context.Context, db database.DB) seeded {
	t.Helper()

	p := "it-" + uuid.NewString()[:8] + "-"
	s := seeded{prefix: p, jobID: p + "backend", strongID: p + "strong", weakID: p + "weak"}

	if _, err := db.Exec(ctx,
		`INSERT INTO job_requirements (id, title, required_technical, required_soft, required_education)
		 VALUES ($1, 'Backend Engineer', $2, $3, 'computer science')`,
		s.jobID, []string{"go", "postgresql"}, []string{"teamwork", "communication"},
	); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO candidates (id, technical_skills, soft_skills, department, portfolio_projects, club_experience, personality_scores)
		 VALUES ($1, $2, $3, 'Computer Science and Engineering', $4::jsonb, 'chess club', $5::jsonb)`,
		s.strongID, []string{"Go", "PostgreSQL"}, []string{"teamwork", "communication"},
		`[{"title":"matcher"}]`, `{"extraversion":4,"agreeableness":4}`,
	); err != nil {
		t.Fatalf("seed strong candidate: %v", err)
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO candidates (id, technical_skills, soft_skills) VALUES ($1, $2, $3)`,
		s.weakID, []string{"React"}, []string{"teamwork"},
	); err != nil {
		t.Fatalf("seed weak candidate: %v", err)
	}

	return s
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, s seeded) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM job_matches WHERE job_id = $1`, s.jobID)
	_, _ = db.Exec(ctx, `DELETE FROM candidates WHERE id LIKE $1`, s.prefix+"%")
	_, _ = db.Exec(ctx, `DELETE FROM job_requirements WHERE id = $1`, s.jobID)
}

func callRanking(t *testing.T, fapp *app.App, path string) []rankedItem {
	t.Helper()

	resp, err := fapp.Fiber.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("ranking request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("ranking decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("ranking: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var items []rankedItem
	if err := json.Unmarshal(sr.Data, &items); err != nil {
		t.Fatalf("ranking: data unmarshal error: %v", err)
	}
	return items
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
