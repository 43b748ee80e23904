package repository

import (
	"context"
	"errors"

	"job-match/internal/database"

	"github.com/jackc/pgx/v5"
)

type JobRequirement struct {
	ID                 string
	Title              string
	RequiredTechnical  []string
	RequiredSoft       []string
	RequiredEducation  string
	RequiredExperience string
}

type JobRequirementRepository interface {
	FindByID(ctx context.Context, id string) (JobRequirement, error)
	ListActive(ctx context.Context, limit, offset int) ([]JobRequirement, error)
}

type PostgresJobRequirementRepository struct {
	db database.DB
}

func NewPostgresJobRequirementRepository(db database.DB) *PostgresJobRequirementRepository {
	return &PostgresJobRequirementRepository{db: db}
}

func (r *PostgresJobRequirementRepository) FindByID(ctx context.Context, id string) (JobRequirement, error) {
	var j JobRequirement
	err := r.db.QueryRow(ctx,
		`SELECT id, title, required_technical, required_soft, required_education, required_experience
		 FROM job_requirements WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.RequiredTechnical, &j.RequiredSoft, &j.RequiredEducation, &j.RequiredExperience)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobRequirement{}, ErrNotFound
		}
		return JobRequirement{}, err
	}
	return j, nil
}

func (r *PostgresJobRequirementRepository) ListActive(ctx context.Context, limit, offset int) ([]JobRequirement, error) {
	if limit <= 0 {
		return []JobRequirement{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, title, required_technical, required_soft, required_education, required_experience
		 FROM job_requirements
		 WHERE status = 'active'
		 ORDER BY created_at ASC, id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobRequirement, 0, limit)
	for rows.Next() {
		var j JobRequirement
		if err := rows.Scan(&j.ID, &j.Title, &j.RequiredTechnical, &j.RequiredSoft, &j.RequiredEducation, &j.RequiredExperience); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
