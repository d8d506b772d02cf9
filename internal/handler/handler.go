package handlers

import (
	"context"

	"pitchdeck/internal/config"
	"pitchdeck/internal/oauth"
	"pitchdeck/internal/repository"
	"pitchdeck/internal/service"
	"pitchdeck/internal/validation"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	AuthService  service.AuthService
	PitchService service.PitchService
	Tokens       *service.TokenCodec
	AuthorRepo   repository.AuthorRepository
	StartupRepo  repository.StartupRepository
	AssetRepo    repository.AssetRepository
	Provider     oauth.Provider
	States       oauth.StateStore
	DB           HealthChecker
	Cfg          *config.Config
	Validate     *validation.Validator
}

func NewHandlers(repo *repository.Repository, service *service.Service, provider oauth.Provider, states oauth.StateStore, db HealthChecker, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:  service.Auth,
		PitchService: service.Pitch,
		Tokens:       service.Token,
		AuthorRepo:   repo.Author,
		StartupRepo:  repo.Startup,
		AssetRepo:    repo.Asset,
		Provider:     provider,
		States:       states,
		DB:           db,
		Cfg:          config,
		Validate:     validation.New(),
	}
}
