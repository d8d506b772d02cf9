package service

import (
	"net/http"

	"pitchdeck/internal/config"
	"pitchdeck/internal/repository"
	"pitchdeck/internal/storage"
)

type Service struct {
	Auth  AuthService
	Asset AssetService
	Pitch PitchService
	Token *TokenCodec
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, httpClient *http.Client) *Service {
	assets := NewAssetService(rep.Asset, storage)

	return &Service{
		Auth:  NewAuthService(rep.Author, assets, httpClient),
		Asset: assets,
		Pitch: NewPitchService(rep.Startup, assets),
		Token: NewTokenCodec(cfg.Auth.Secret, cfg.Auth.SessionMaxAge),
	}
}
