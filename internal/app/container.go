package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-match/internal/config"
	"job-match/internal/database"
	"job-match/internal/database/migration"
	dbpostgres "job-match/internal/database/postgres"
	"job-match/internal/infrastructure/cache"
	"job-match/internal/infrastructure/messaging"
	"job-match/internal/repository"
	"job-match/internal/usecase"
	"job-match/migrations"

	"go.uber.org/zap"
)

// Container owns the process-wide dependencies. DB, Cache and Publisher are
// nil when their backing service is not configured; the usecases then report
// ErrStoreUnavailable or ErrPublishUnavailable for the operations that need them.
type Container struct {
	Config    config.Config
	Logger    *zap.Logger
	DB        database.DB
	Cache     *cache.Redis
	Publisher *messaging.Publisher

	Matching  *usecase.Matching
	Ranking   *usecase.Ranking
	JobEvents *usecase.JobEvents
}

type ContainerOptions struct {
	// Publisher opens a RabbitMQ publisher when RABBITMQ_URL is set.
	Publisher bool
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ContainerOptions) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.Enabled() {
		if err := c.openStore(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	} else {
		logger.Warn("database not configured, stored rankings disabled")
	}

	if opts.Publisher && cfg.RabbitMQ.URL != "" {
		pub, err := messaging.NewPublisher(cfg.RabbitMQ, logger)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("rabbitmq publisher: %w", err)
		}
		c.Publisher = pub
	}

	c.Matching = usecase.NewMatchingUsecase(cfg.Matching)

	var (
		candidates repository.CandidateRepository
		jobs       repository.JobRequirementRepository
		matches    repository.JobMatchRepository
		matchCache usecase.MatchCache
		publisher  usecase.JobEventPublisher
	)
	if c.DB != nil {
		candidates = repository.NewPostgresCandidateRepository(c.DB)
		jobs = repository.NewPostgresJobRequirementRepository(c.DB)
		matches = repository.NewPostgresJobMatchRepository(c.DB)
	}
	if c.Cache != nil {
		matchCache = c.Cache
	}
	if c.Publisher != nil {
		publisher = c.Publisher
	}

	c.Ranking = usecase.NewRankingUsecase(candidates, jobs, matches, c.Matching, matchCache, logger)
	c.JobEvents = usecase.NewJobEventsUsecase(jobs, publisher)

	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, c.Config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	runner := migration.Runner{FS: migrations.FS}
	if c.Config.App.MigrationsDir != "" {
		runner = migration.Runner{Dir: c.Config.App.MigrationsDir}
	}
	n, err := runner.Run(ctx, db.SQLDB())
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	c.Logger.Info("migrations applied", zap.Int("count", n))

	c.Cache = cache.NewRedis(c.Config.Redis, c.Logger)
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Publisher != nil {
		errs = append(errs, c.Publisher.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
