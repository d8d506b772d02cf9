package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"pitchdeck/internal/models"
	"pitchdeck/internal/monitoring"
	"pitchdeck/internal/repository"
)

const maxAvatarSize = 5 << 20

// AuthService holds the callbacks run around a GitHub sign-in.
type AuthService interface {
	SignIn(ctx context.Context, user models.User, account *models.Account, profile *models.Profile) (bool, error)
	EnrichToken(ctx context.Context, token models.Token, account *models.Account, profile *models.Profile) (models.Token, error)
	ProjectSession(token models.Token) models.Session
	NewToken(user models.User, profile *models.Profile) models.Token
}

type authService struct {
	authorRepo repository.AuthorRepository
	assets     AssetService
	httpClient *http.Client
}

func NewAuthService(authorRepo repository.AuthorRepository, assets AssetService, httpClient *http.Client) AuthService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &authService{
		authorRepo: authorRepo,
		assets:     assets,
		httpClient: httpClient,
	}
}

// SignIn makes sure an Author exists for the GitHub account. A failed avatar
// does not block the sign-in; the Author is then stored without an image.
func (s *authService) SignIn(ctx context.Context, user models.User, account *models.Account, profile *models.Profile) (bool, error) {
	if profile == nil {
		return false, errors.New("sign in without a provider profile")
	}

	existing, err := s.authorRepo.GetByGithubID(ctx, profile.ID)
	if err != nil {
		return false, fmt.Errorf("look up author: %w", err)
	}
	if existing != nil {
		return true, nil
	}

	var imageID *string
	if user.Image != "" {
		asset, err := s.uploadAvatar(ctx, user.Image)
		if err != nil {
			log.Warn().Err(err).Int64("github_id", profile.ID).Msg("avatar upload failed, creating author without image")
			monitoring.CaptureError(ctx, err)
		} else {
			imageID = &asset.ID
		}
	}

	author := &models.Author{
		GithubID: profile.ID,
		Name:     user.Name,
		Username: profile.Login,
		Email:    user.Email,
		Bio:      profile.Bio,
		ImageID:  imageID,
	}

	stored, created, err := s.authorRepo.CreateIfAbsent(ctx, author)
	if err != nil {
		s.discardAsset(ctx, imageID)
		return false, fmt.Errorf("create author: %w", err)
	}

	if !created {
		// a concurrent sign-in stored the author first
		s.discardAsset(ctx, imageID)
		return true, nil
	}

	log.Info().
		Str("author_id", stored.ID).
		Int64("github_id", stored.GithubID).
		Bool("has_image", stored.ImageID != nil).
		Msg("author created")

	return true, nil
}

// EnrichToken stamps the Author's store id on the token. Without a fresh
// account and profile the token is returned as is.
func (s *authService) EnrichToken(ctx context.Context, token models.Token, account *models.Account, profile *models.Profile) (models.Token, error) {
	if account == nil || profile == nil {
		return token, nil
	}

	author, err := s.authorRepo.GetByGithubID(ctx, profile.ID)
	if err != nil {
		return token, fmt.Errorf("look up author for token: %w", err)
	}
	if author != nil {
		token.ID = author.ID
	}

	return token, nil
}

func (s *authService) ProjectSession(token models.Token) models.Session {
	return models.Session{
		ID: token.ID,
		User: models.User{
			Name:  token.Name,
			Email: token.Email,
			Image: token.Picture,
		},
		Expires: token.ExpiresAt,
	}
}

func (s *authService) NewToken(user models.User, profile *models.Profile) models.Token {
	token := models.Token{
		Name:    user.Name,
		Email:   user.Email,
		Picture: user.Image,
	}
	if profile != nil {
		token.Subject = strconv.FormatInt(profile.ID, 10)
	}
	return token
}

func (s *authService) uploadAvatar(ctx context.Context, avatarURL string) (*models.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, avatarURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build avatar request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch avatar: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAvatarSize+1))
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}
	if len(data) > maxAvatarSize {
		return nil, fmt.Errorf("avatar larger than %d bytes", maxAvatarSize)
	}

	mtype := mimetype.Detect(data)
	file := &models.Upload{
		Filename:    "avatar" + mtype.Extension(),
		ContentType: mtype.String(),
		Data:        data,
	}

	return s.assets.UploadAsset(ctx, models.AssetKindImage, file)
}

func (s *authService) discardAsset(ctx context.Context, assetID *string) {
	if assetID == nil {
		return
	}
	if err := s.assets.DeleteAsset(ctx, *assetID); err != nil {
		log.Warn().Err(err).Str("asset_id", *assetID).Msg("failed to remove unused avatar")
	}
}
