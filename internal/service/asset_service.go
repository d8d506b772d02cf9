package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"pitchdeck/internal/models"
	"pitchdeck/internal/repository"
	"pitchdeck/internal/storage"
)

// AssetService puts blobs in object storage and keeps a record of each one in the content store.
type AssetService interface {
	UploadAsset(ctx context.Context, kind string, file *models.Upload) (*models.Asset, error)
	DeleteAsset(ctx context.Context, assetID string) error
}

type assetService struct {
	assetRepo repository.AssetRepository
	storage   storage.Storage
}

func NewAssetService(assetRepo repository.AssetRepository, storage storage.Storage) AssetService {
	return &assetService{
		assetRepo: assetRepo,
		storage:   storage,
	}
}

func (a *assetService) UploadAsset(ctx context.Context, kind string, file *models.Upload) (*models.Asset, error) {
	if file.Size() == 0 {
		return nil, fmt.Errorf("upload %s: file is empty", kind)
	}

	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(file.Data).String()
	}

	objectName, assetURL, err := a.storage.Upload(ctx, kind, file.Filename, contentType, bytes.NewReader(file.Data), file.Size())
	if err != nil {
		return nil, fmt.Errorf("upload %s to storage: %w", kind, err)
	}

	asset := &models.Asset{
		Kind:             kind,
		ObjectName:       objectName,
		URL:              assetURL,
		OriginalFilename: file.Filename,
		MimeType:         contentType,
		Size:             file.Size(),
		CreatedAt:        time.Now(),
	}

	err = a.assetRepo.Create(ctx, asset)
	if err != nil {
		if delErr := a.storage.Delete(ctx, objectName); delErr != nil {
			log.Warn().Err(delErr).Str("object", objectName).Msg("failed to remove blob after asset record error")
		}
		return nil, fmt.Errorf("save asset record: %w", err)
	}

	return asset, nil
}

func (a *assetService) DeleteAsset(ctx context.Context, assetID string) error {
	asset, err := a.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return err
	}

	if err := a.storage.Delete(ctx, asset.ObjectName); err != nil {
		log.Warn().Err(err).Str("object", asset.ObjectName).Msg("failed to remove blob from storage")
	}

	if err := a.assetRepo.Delete(ctx, assetID); err != nil {
		return fmt.Errorf("delete asset record: %w", err)
	}

	return nil
}
