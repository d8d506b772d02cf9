package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pitchdeck/internal/models"
	"pitchdeck/internal/monitoring"
	"pitchdeck/internal/repository"
)

const notSignedIn = "Not signed in"

// PitchService is the server action behind the pitch form.
type PitchService interface {
	CreatePitch(ctx context.Context, session *models.Session, form models.PitchForm, pitch string) ActionResult
}

type pitchService struct {
	startupRepo repository.StartupRepository
	assets      AssetService
}

func NewPitchService(startupRepo repository.StartupRepository, assets AssetService) PitchService {
	return &pitchService{
		startupRepo: startupRepo,
		assets:      assets,
	}
}

func (p *pitchService) CreatePitch(ctx context.Context, session *models.Session, form models.PitchForm, pitch string) ActionResult {
	if session == nil || session.ID == "" {
		return errorResult(&ActionError{Kind: AuthError, Message: notSignedIn})
	}

	startup := &models.Startup{
		ID:          uuid.New().String(),
		Title:       form.Title,
		Slug:        Slugify(form.Title),
		AuthorID:    session.ID,
		Views:       0,
		Description: form.Description,
		Category:    form.Category,
		Pitch:       pitch,
	}
	if key := strings.TrimSpace(form.IdempotencyKey); key != "" {
		startup.IdempotencyKey = &key
	}

	var uploaded *models.Asset
	if form.Image.Size() > 0 {
		asset, err := p.assets.UploadAsset(ctx, models.AssetKindImage, form.Image)
		if err != nil {
			return p.fail(ctx, &ActionError{Kind: UploadError, Message: "Failed to upload image", Err: err})
		}
		uploaded = asset
		startup.ImageID = &asset.ID
	}

	created, err := p.startupRepo.Create(ctx, startup)
	if err != nil {
		p.discardUpload(ctx, uploaded)
		return p.fail(ctx, &ActionError{Kind: StoreError, Message: "Failed to create startup", Err: err})
	}

	if created.ID != startup.ID {
		// replayed submission; the first one already owns its image
		p.discardUpload(ctx, uploaded)
		log.Info().Str("startup_id", created.ID).Str("author_id", session.ID).Msg("duplicate pitch submission")
		return successResult(created)
	}

	log.Info().
		Str("startup_id", created.ID).
		Str("author_id", session.ID).
		Str("slug", created.Slug).
		Msg("startup created")

	return successResult(created)
}

func (p *pitchService) fail(ctx context.Context, err *ActionError) ActionResult {
	log.Error().Err(err).Str("kind", string(err.Kind)).Msg("create pitch failed")
	monitoring.CaptureError(ctx, err)
	return errorResult(err)
}

func (p *pitchService) discardUpload(ctx context.Context, asset *models.Asset) {
	if asset == nil {
		return
	}
	if err := p.assets.DeleteAsset(ctx, asset.ID); err != nil {
		log.Warn().Err(err).Str("asset_id", asset.ID).Msg("failed to remove orphaned pitch image")
		monitoring.CaptureError(ctx, err)
	}
}
