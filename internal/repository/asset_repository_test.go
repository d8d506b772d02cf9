package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchdeck/internal/models"
)

func TestAssetRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAssetRepository(db)

	asset := &models.Asset{
		Kind:             models.AssetKindImage,
		ObjectName:       "image/2026/10/abc.png",
		URL:              "http://localhost:9000/assets/image/2026/10/abc.png",
		OriginalFilename: "logo.png",
		MimeType:         "image/png",
		Size:             1024,
	}

	mock.ExpectExec(`INSERT INTO assets`).
		WithArgs(
			sqlmock.AnyArg(),
			"image",
			"image/2026/10/abc.png",
			"http://localhost:9000/assets/image/2026/10/abc.png",
			"logo.png",
			"image/png",
			int64(1024),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), asset)

	require.NoError(t, err)
	assert.NotEmpty(t, asset.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetRepository_Delete(t *testing.T) {
	query := regexp.QuoteMeta(`DELETE FROM assets WHERE asset_id = $1`)

	t.Run("deleted", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAssetRepository(db)

		mock.ExpectExec(query).WithArgs("asset-1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "asset-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAssetRepository(db)

		mock.ExpectExec(query).WithArgs("asset-1").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "asset-1"), ErrAssetNotFound)
	})
}
