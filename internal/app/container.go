package app

import (
	"context"
	"time"

	"taxonomy-indexer/internal/config"
	"taxonomy-indexer/internal/database"
	dbpostgres "taxonomy-indexer/internal/database/postgres"
	"taxonomy-indexer/internal/infrastructure/cache"
	"taxonomy-indexer/internal/pipeline"
	"taxonomy-indexer/internal/pkg/logging"
	"taxonomy-indexer/internal/pkg/token"
	"taxonomy-indexer/internal/repository"
	"taxonomy-indexer/internal/search"
	"taxonomy-indexer/internal/searchindex"
	"taxonomy-indexer/internal/usecase"
)

// Container owns every long-lived dependency and the wiring between them.
type Container struct {
	Config config.Config
	Log    *logging.Logger
	DB     database.DB
	Redis  *cache.Redis

	Tokens    token.Service
	Pipeline  *pipeline.ReindexPipeline
	Reindexer *usecase.Reindexer
}

func NewContainer(cfg config.Config, log *logging.Logger) (*Container, error) {
	if log == nil {
		log = logging.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(log)

	jobs := repository.NewPostgresJobRepository(db)
	jobSkills := repository.NewPostgresJobSkillRepository(db)
	postings := repository.NewPostgresJobPostingRepository(db)
	industries := repository.NewPostgresIndustryRepository(db)

	composer := search.NewComposer(jobSkills, postings, industries, log)
	index := searchindex.NewAlgoliaIndex(cfg.Algolia, log)

	pipe := pipeline.NewReindexPipeline(jobs, jobSkills, industries, composer, index, log, cfg.Pipeline.JobsPageSize)

	return &Container{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Redis:     redis,
		Tokens:    token.NewHMACService(cfg.Auth.ServiceTokenSecret, cfg.Auth.ServiceTokenTTL),
		Pipeline:  pipe,
		Reindexer: usecase.NewReindexer(pipe, redis, log),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
