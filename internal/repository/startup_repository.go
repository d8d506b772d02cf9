package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pitchdeck/internal/models"
)

type StartupRepositoryImpl struct {
	DB *sqlx.DB
}

func NewStartupRepository(db *sqlx.DB) *StartupRepositoryImpl {
	return &StartupRepositoryImpl{DB: db}
}

func (r *StartupRepositoryImpl) Create(ctx context.Context, startup *models.Startup) (*models.Startup, error) {
	query := `
		INSERT INTO startups
		(startup_id, title, slug, author_id, views, description, category, image_id, pitch, idempotency_key, created_at)
		VALUES
		(:startup_id, :title, :slug, :author_id, :views, :description, :category, :image_id, :pitch, :idempotency_key, :created_at)
		ON CONFLICT (author_id, idempotency_key) DO NOTHING
	`

	if startup.ID == "" {
		startup.ID = uuid.New().String()
	}
	if startup.CreatedAt.IsZero() {
		startup.CreatedAt = time.Now()
	}

	result, err := r.DB.NamedExecContext(ctx, query, startup)
	if err != nil {
		return nil, fmt.Errorf("create startup: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("check inserted rows: %w", err)
	}

	if rowsAffected == 1 {
		return startup, nil
	}

	if startup.IdempotencyKey == nil {
		return nil, errors.New("create startup: no rows inserted")
	}

	return r.getByIdempotencyKey(ctx, startup.AuthorID, *startup.IdempotencyKey)
}

func (r *StartupRepositoryImpl) GetByID(ctx context.Context, startupID string) (*models.Startup, error) {
	query := `SELECT * FROM startups WHERE startup_id = $1`

	var startup models.Startup
	err := r.DB.GetContext(ctx, &startup, query, startupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("startup %s: %w", startupID, ErrStartupNotFound)
		}
		return nil, fmt.Errorf("get startup: %w", err)
	}

	return &startup, nil
}

func (r *StartupRepositoryImpl) getByIdempotencyKey(ctx context.Context, authorID, key string) (*models.Startup, error) {
	query := `SELECT * FROM startups WHERE author_id = $1 AND idempotency_key = $2`

	var startup models.Startup
	err := r.DB.GetContext(ctx, &startup, query, authorID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("startup with idempotency key %s: %w", key, ErrStartupNotFound)
		}
		return nil, fmt.Errorf("get startup by idempotency key: %w", err)
	}

	return &startup, nil
}
