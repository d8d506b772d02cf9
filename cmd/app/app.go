package app

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"pitchdeck/internal/config"
	"pitchdeck/internal/database"
	"pitchdeck/internal/oauth"
	"pitchdeck/internal/repository"
	"pitchdeck/internal/service"
	"pitchdeck/internal/storage"
)

type Deps struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Provider oauth.Provider
	States   oauth.StateStore
	redis    *redis.Client
}

func App(cfg *config.Config) *Deps {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize MinIO")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	deps := &Deps{
		DB:       db,
		Repo:     repository.NewRepository(db.DB),
		Provider: oauth.NewGitHubProvider(cfg.Auth, httpClient),
	}
	deps.Services = service.NewService(deps.Repo, cfg, minioClient, httpClient)
	deps.States = deps.newStateStore(cfg)

	return deps
}

func (d *Deps) newStateStore(cfg *config.Config) oauth.StateStore {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, keeping oauth state in memory")
		return oauth.NewMemoryStateStore(cfg.Auth.StateTTL)
	}

	d.redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := d.redis.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
	}

	return oauth.NewRedisStateStore(d.redis, cfg.Auth.StateTTL)
}

func (d *Deps) Close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close error")
		}
	}
	if err := d.DB.CloseDB(); err != nil {
		log.Warn().Err(err).Msg("database close error")
	}
}
