package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"pitchdeck/internal/models"
)

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrStartupNotFound = errors.New("startup not found")
	ErrAssetNotFound   = errors.New("asset not found")
)

type AuthorRepository interface {
	// GetByGithubID returns nil, nil when no author is linked to the GitHub id.
	GetByGithubID(ctx context.Context, githubID int64) (*models.Author, error)
	GetByID(ctx context.Context, authorID string) (*models.Author, error)
	// CreateIfAbsent inserts the author unless one already exists for its GitHub id.
	// The stored author is returned together with whether this call created it.
	CreateIfAbsent(ctx context.Context, author *models.Author) (*models.Author, bool, error)
}

type StartupRepository interface {
	// Create stores the startup. A replayed idempotency key returns the startup stored first.
	Create(ctx context.Context, startup *models.Startup) (*models.Startup, error)
	GetByID(ctx context.Context, startupID string) (*models.Startup, error)
}

type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, assetID string) (*models.Asset, error)
	Delete(ctx context.Context, assetID string) error
}

type Repository struct {
	Author  AuthorRepository
	Startup StartupRepository
	Asset   AssetRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Author:  NewAuthorRepository(db),
		Startup: NewStartupRepository(db),
		Asset:   NewAssetRepository(db),
	}
}
