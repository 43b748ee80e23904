package seeder

import (
	"context"
	"errors"
	"fmt"

	"job-match/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) (int, error)
}

type Runner struct {
	Seeders []Seeder
}

// Run applies the seeders in order and returns rows written per seeder name.
func (r Runner) Run(ctx context.Context, db database.DB) (map[string]int, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	out := make(map[string]int, len(r.Seeders))
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		n, err := s.Run(ctx, db)
		if err != nil {
			return out, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		out[s.Name()] = n
	}
	return out, nil
}
