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

type AssetRepositoryImpl struct {
	DB *sqlx.DB
}

func NewAssetRepository(db *sqlx.DB) *AssetRepositoryImpl {
	return &AssetRepositoryImpl{DB: db}
}

func (r *AssetRepositoryImpl) Create(ctx context.Context, asset *models.Asset) error {
	query := `
		INSERT INTO assets (asset_id, kind, object_name, url, original_filename, mime_type, size, created_at)
		VALUES (:asset_id, :kind, :object_name, :url, :original_filename, :mime_type, :size, :created_at)
	`

	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}

	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now()
	}

	_, err := r.DB.NamedExecContext(ctx, query, asset)
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}

	return nil
}

func (r *AssetRepositoryImpl) GetByID(ctx context.Context, assetID string) (*models.Asset, error) {
	query := `SELECT * FROM assets WHERE asset_id = $1`

	var asset models.Asset
	err := r.DB.GetContext(ctx, &asset, query, assetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("asset %s: %w", assetID, ErrAssetNotFound)
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}

	return &asset, nil
}

func (r *AssetRepositoryImpl) Delete(ctx context.Context, assetID string) error {
	query := `DELETE FROM assets WHERE asset_id = $1`

	result, err := r.DB.ExecContext(ctx, query, assetID)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("asset %s: %w", assetID, ErrAssetNotFound)
	}

	return nil
}
