package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pitchdeck/internal/models"
	"pitchdeck/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, user models.User, account *models.Account, profile *models.Profile) (bool, error) {
	args := m.Called(ctx, user, account, profile)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) EnrichToken(ctx context.Context, token models.Token, account *models.Account, profile *models.Profile) (models.Token, error) {
	args := m.Called(ctx, token, account, profile)
	return args.Get(0).(models.Token), args.Error(1)
}

func (m *MockAuthService) ProjectSession(token models.Token) models.Session {
	args := m.Called(token)
	return args.Get(0).(models.Session)
}

func (m *MockAuthService) NewToken(user models.User, profile *models.Profile) models.Token {
	args := m.Called(user, profile)
	return args.Get(0).(models.Token)
}

type MockPitchService struct {
	mock.Mock
}

func (m *MockPitchService) CreatePitch(ctx context.Context, session *models.Session, form models.PitchForm, pitch string) service.ActionResult {
	args := m.Called(ctx, session, form, pitch)
	return args.Get(0).(service.ActionResult)
}

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

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockProvider) Exchange(ctx context.Context, code string) (*models.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockProvider) Profile(ctx context.Context, account *models.Account) (*models.Profile, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
