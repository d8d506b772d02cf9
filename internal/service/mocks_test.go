package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"pitchdeck/internal/models"
)

type MockAuthorRepository struct {
	mock.Mock
}

func (m *MockAuthorRepository) GetByGithubID(ctx context.Context, githubID int64) (*models.Author, error) {
	args := m.Called(ctx, githubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) GetByID(ctx context.Context, authorID string) (*models.Author, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) CreateIfAbsent(ctx context.Context, author *models.Author) (*models.Author, bool, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Author), args.Bool(1), args.Error(2)
}

type MockStartupRepository struct {
	mock.Mock
}

func (m *MockStartupRepository) Create(ctx context.Context, startup *models.Startup) (*models.Startup, error) {
	args := m.Called(ctx, startup)
	if fn, ok := args.Get(0).(func(context.Context, *models.Startup) *models.Startup); ok {
		return fn(ctx, startup), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Startup), args.Error(1)
}

func (m *MockStartupRepository) GetByID(ctx context.Context, startupID string) (*models.Startup, error) {
	args := m.Called(ctx, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Startup), args.Error(1)
}

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) GetByID(ctx context.Context, assetID string) (*models.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) Delete(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, kind, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, kind, fileName, contentType, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) Delete(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) UploadAsset(ctx context.Context, kind string, file *models.Upload) (*models.Asset, error) {
	args := m.Called(ctx, kind, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetService) DeleteAsset(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}
