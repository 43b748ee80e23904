package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"job-match/internal/database"
	"job-match/internal/repository"
)

// CandidatesSeeder upserts candidate profiles by id.
type CandidatesSeeder struct {
	Items []repository.Candidate
}

func (CandidatesSeeder) Name() string { return "candidates" }

func (s CandidatesSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	if err := EnsureTableColumns(ctx, db, "candidates",
		"id", "technical_skills", "soft_skills", "education_field", "department",
		"portfolio_projects", "club_experience", "other_experience", "experience", "personality_scores",
	); err != nil {
		return 0, err
	}

	n := 0
	err := database.InTx(ctx, db, func(tx database.Tx) error {
		for _, c := range s.Items {
			portfolio, err := json.Marshal(nonNil(c.PortfolioProjects))
			if err != nil {
				return fmt.Errorf("candidate %s: %w", c.ID, err)
			}
			experience, err := json.Marshal(nonNil(c.Experience))
			if err != nil {
				return fmt.Errorf("candidate %s: %w", c.ID, err)
			}
			var personality []byte
			if c.PersonalityScores != nil {
				if personality, err = json.Marshal(c.PersonalityScores); err != nil {
					return fmt.Errorf("candidate %s: %w", c.ID, err)
				}
			}

			if _, err := tx.Exec(ctx,
				`INSERT INTO candidates (id, technical_skills, soft_skills, education_field, department,
				   portfolio_projects, club_experience, other_experience, experience, personality_scores)
				 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9::jsonb, $10::jsonb)
				 ON CONFLICT (id) DO UPDATE SET
				   technical_skills = EXCLUDED.technical_skills,
				   soft_skills = EXCLUDED.soft_skills,
				   education_field = EXCLUDED.education_field,
				   department = EXCLUDED.department,
				   portfolio_projects = EXCLUDED.portfolio_projects,
				   club_experience = EXCLUDED.club_experience,
				   other_experience = EXCLUDED.other_experience,
				   experience = EXCLUDED.experience,
				   personality_scores = EXCLUDED.personality_scores,
				   updated_at = now()`,
				c.ID, nonNil(c.TechnicalSkills), nonNil(c.SoftSkills), c.EducationField, c.Department,
				string(portfolio), c.ClubExperience, c.OtherExperience, string(experience), nullableJSON(personality),
			); err != nil {
				return fmt.Errorf("candidate %s: %w", c.ID, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// JobRequirementsSeeder upserts active job requirements by id.
type JobRequirementsSeeder struct {
	Items []repository.JobRequirement
}

func (JobRequirementsSeeder) Name() string { return "job_requirements" }

func (s JobRequirementsSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	if err := EnsureTableColumns(ctx, db, "job_requirements",
		"id", "title", "required_technical", "required_soft", "required_education", "required_experience", "status",
	); err != nil {
		return 0, err
	}

	n := 0
	err := database.InTx(ctx, db, func(tx database.Tx) error {
		for _, j := range s.Items {
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_requirements (id, title, required_technical, required_soft,
				   required_education, required_experience, status)
				 VALUES ($1, $2, $3, $4, $5, $6, 'active')
				 ON CONFLICT (id) DO UPDATE SET
				   title = EXCLUDED.title,
				   required_technical = EXCLUDED.required_technical,
				   required_soft = EXCLUDED.required_soft,
				   required_education = EXCLUDED.required_education,
				   required_experience = EXCLUDED.required_experience,
				   status = 'active',
				   updated_at = now()`,
				j.ID, j.Title, nonNil(j.RequiredTechnical), nonNil(j.RequiredSoft), j.RequiredEducation, j.RequiredExperience,
			); err != nil {
				return fmt.Errorf("job %s: %w", j.ID, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
