package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"pitchdeck/internal/models"
	"pitchdeck/internal/repository"
)

type AuthorResponse struct {
	*models.Author
	Image string `json:"image,omitempty"`
}

func (h *Handlers) GetAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := mux.Vars(r)["id"]

	author, err := h.AuthorRepo.GetByID(r.Context(), authorID)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			WriteError(w, "Author not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, AuthorResponse{
		Author: author,
		Image:  h.assetURL(r.Context(), author.ImageID),
	}, http.StatusOK)
}

// assetURL resolves an asset reference to its public URL. A dangling reference yields "".
func (h *Handlers) assetURL(ctx context.Context, assetID *string) string {
	if assetID == nil {
		return ""
	}

	asset, err := h.AssetRepo.GetByID(ctx, *assetID)
	if err != nil {
		log.Warn().Err(err).Str("asset_id", *assetID).Msg("resolve asset url")
		return ""
	}

	return asset.URL
}
