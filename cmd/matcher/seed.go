package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-match/internal/config"
	"job-match/internal/database/migration"
	dbpostgres "job-match/internal/database/postgres"
	"job-match/internal/database/seeder"
	"job-match/internal/delivery/http/dto"
	"job-match/internal/infrastructure/cache"
	"job-match/internal/domain/matching"
	"job-match/internal/repository"
	"job-match/internal/usecase"
	"job-match/migrations"

	"github.com/spf13/cobra"
)

type seedSummary struct {
	Migrations int            `json:"migrations_applied"`
	Seeded     map[string]int `json:"seeded"`
	Refreshed  map[string]int `json:"refreshed,omitempty"`
	// CacheInvalidated is false when redis could not be reached.
	CacheInvalidated bool `json:"cache_invalidated"`
}

func newSeedCmd() *cobra.Command {
	var candidatesPath, jobsPath string
	var refresh bool
	var minPct int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load candidate and job JSON files into the store (DB_* env)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if candidatesPath == "" && jobsPath == "" {
				return errors.New("at least one of --candidates or --jobs is required")
			}

			var req dto.SeedRequest
			if candidatesPath != "" {
				if err := readJSONFile(candidatesPath, &req.Candidates); err != nil {
					return err
				}
			}
			if jobsPath != "" {
				if err := readJSONFile(jobsPath, &req.Jobs); err != nil {
					return err
				}
			}
			if err := req.Validate(); err != nil {
				return validationError(err)
			}

			dbcfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			db, err := dbpostgres.Connect(ctx, dbcfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() { _ = db.Close() }()

			var summary seedSummary
			if summary.Migrations, err = (migration.Runner{FS: migrations.FS}).Run(ctx, db.SQLDB()); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			jobs := jobsToRepository(req.Jobs)
			summary.Seeded, err = seeder.Runner{Seeders: []seeder.Seeder{
				seeder.JobRequirementsSeeder{Items: jobs},
				seeder.CandidatesSeeder{Items: candidatesToRepository(req.Candidates)},
			}}.Run(ctx, db)
			if err != nil {
				return err
			}

			rc := cache.NewRedis(config.LoadRedis(), nil)
			defer func() { _ = rc.Close() }()

			if refresh {
				ranking := usecase.NewRankingUsecase(
					repository.NewPostgresCandidateRepository(db),
					repository.NewPostgresJobRequirementRepository(db),
					repository.NewPostgresJobMatchRepository(db),
					matcherFor(cmd),
					rc,
					nil,
				)
				summary.Refreshed = make(map[string]int, len(jobs))
				for _, j := range jobs {
					n, err := ranking.RefreshJobMatches(ctx, j.ID, minPct)
					if err != nil {
						return fmt.Errorf("refresh %s: %w", j.ID, err)
					}
					summary.Refreshed[j.ID] = n
				}
			}

			// Seeded rows may already appear in cached ranked lists.
			if err := usecase.InvalidateRankings(ctx, rc); err != nil {
				return err
			}
			summary.CacheInvalidated = rc.Ping(ctx) == nil

			return writeOutput(cmd, summary)
		},
	}

	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "Path to JSON array of candidates")
	cmd.Flags().StringVar(&jobsPath, "jobs", "", "Path to JSON array of jobs")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Recompute persisted matches for the seeded jobs")
	cmd.Flags().IntVar(&minPct, "min", matching.DefaultMinPercentage, "Minimum match percentage persisted on --refresh")
	return cmd
}

func candidatesToRepository(in []dto.CandidateRequest) []repository.Candidate {
	out := make([]repository.Candidate, 0, len(in))
	for _, c := range in {
		portfolio := make([]repository.PortfolioProject, 0, len(c.PortfolioProjects))
		for _, p := range c.PortfolioProjects {
			portfolio = append(portfolio, repository.PortfolioProject{Title: p.Title, Description: p.Description, URL: p.URL})
		}
		experience := make([]repository.ExperienceEntry, 0, len(c.Experience))
		for _, e := range c.Experience {
			experience = append(experience, repository.ExperienceEntry{Company: e.Company, Position: e.Position, Description: e.Description})
		}
		out = append(out, repository.Candidate{
			ID:                c.ID,
			TechnicalSkills:   c.TechnicalSkills,
			SoftSkills:        c.SoftSkills,
			EducationField:    c.EducationField,
			Department:        c.Department,
			PortfolioProjects: portfolio,
			ClubExperience:    c.ClubExperience,
			OtherExperience:   c.OtherExperience,
			Experience:        experience,
			PersonalityScores: c.PersonalityScores,
		})
	}
	return out
}

func jobsToRepository(in []dto.JobRequest) []repository.JobRequirement {
	out := make([]repository.JobRequirement, 0, len(in))
	for _, j := range in {
		out = append(out, repository.JobRequirement{
			ID:                 j.ID,
			Title:              j.Title,
			RequiredTechnical:  j.RequiredTechnical,
			RequiredSoft:       j.RequiredSoft,
			RequiredEducation:  j.RequiredEducation,
			RequiredExperience: j.RequiredExperience,
		})
	}
	return out
}
