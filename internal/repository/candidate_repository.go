package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"job-match/internal/database"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

type PortfolioProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type ExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

type Candidate struct {
	ID                string
	TechnicalSkills   []string
	SoftSkills        []string
	EducationField    string
	Department        string
	PortfolioProjects []PortfolioProject
	ClubExperience    *string
	OtherExperience   *string
	Experience        []ExperienceEntry
	PersonalityScores map[string]float64
}

type CandidateRepository interface {
	FindByID(ctx context.Context, id string) (Candidate, error)
	List(ctx context.Context, limit, offset int) ([]Candidate, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `id, technical_skills, soft_skills, education_field, department,
	portfolio_projects, club_experience, other_experience, experience, personality_scores`

func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id string) (Candidate, error) {
	row := r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) List(ctx context.Context, limit, offset int) ([]Candidate, error) {
	if limit <= 0 {
		return []Candidate{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Candidate, 0, limit)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCandidate(row database.Row) (Candidate, error) {
	var (
		c           Candidate
		portfolio   []byte
		experience  []byte
		personality []byte
	)
	if err := row.Scan(
		&c.ID,
		&c.TechnicalSkills,
		&c.SoftSkills,
		&c.EducationField,
		&c.Department,
		&portfolio,
		&c.ClubExperience,
		&c.OtherExperience,
		&experience,
		&personality,
	); err != nil {
		return Candidate{}, err
	}

	if err := decodeJSON(portfolio, &c.PortfolioProjects); err != nil {
		return Candidate{}, fmt.Errorf("candidate %s portfolio_projects: %w", c.ID, err)
	}
	if err := decodeJSON(experience, &c.Experience); err != nil {
		return Candidate{}, fmt.Errorf("candidate %s experience: %w", c.ID, err)
	}
	if err := decodeJSON(personality, &c.PersonalityScores); err != nil {
		return Candidate{}, fmt.Errorf("candidate %s personality_scores: %w", c.ID, err)
	}
	return c, nil
}

// decodeJSON leaves out untouched for SQL NULL.
func decodeJSON(b []byte, out any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}
