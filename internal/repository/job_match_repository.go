package repository

import (
	"context"
	"time"

	"job-match/internal/database"

	"github.com/google/uuid"
)

type JobMatchUpsert struct {
	CandidateID      string
	JobID            string
	MatchPercentage  int
	SkillMatch       int
	PersonalityMatch int
	ExperienceMatch  int
	Reasons          []string
	MatchedAt        time.Time
}

type JobMatchRepository interface {
	ReplaceForJob(ctx context.Context, jobID string, matches []JobMatchUpsert) error
}

type PostgresJobMatchRepository struct {
	db database.DB
}

func NewPostgresJobMatchRepository(db database.DB) *PostgresJobMatchRepository {
	return &PostgresJobMatchRepository{db: db}
}

// ReplaceForJob swaps the stored matches of a job for the given set in one
// transaction; candidates that fell below the threshold disappear.
func (r *PostgresJobMatchRepository) ReplaceForJob(ctx context.Context, jobID string, matches []JobMatchUpsert) error {
	if jobID == "" {
		return nil
	}
	now := time.Now().UTC()

	return database.InTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM job_matches WHERE job_id = $1`, jobID); err != nil {
			return err
		}

		for _, m := range matches {
			if m.CandidateID == "" {
				continue
			}
			if m.MatchedAt.IsZero() {
				m.MatchedAt = now
			}
			reasons := m.Reasons
			if reasons == nil {
				reasons = []string{}
			}

			_, err := tx.Exec(ctx,
				`INSERT INTO job_matches (id, candidate_id, job_id, match_percentage, skill_match, personality_match, experience_match, reasons, matched_at)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
				 ON CONFLICT (candidate_id, job_id) DO UPDATE SET
					match_percentage = EXCLUDED.match_percentage,
					skill_match = EXCLUDED.skill_match,
					personality_match = EXCLUDED.personality_match,
					experience_match = EXCLUDED.experience_match,
					reasons = EXCLUDED.reasons,
					matched_at = EXCLUDED.matched_at`,
				uuid.New(),
				m.CandidateID,
				jobID,
				m.MatchPercentage,
				m.SkillMatch,
				m.PersonalityMatch,
				m.ExperienceMatch,
				reasons,
				m.MatchedAt,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
