package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"pitchdeck/internal/models"
	"pitchdeck/internal/monitoring"
)

func (h *Handlers) SignInGitHub(w http.ResponseWriter, r *http.Request) {
	state, err := h.States.Issue(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("issue oauth state")
		WriteError(w, "Sign in is unavailable", http.StatusServiceUnavailable)
		return
	}

	http.Redirect(w, r, h.Provider.AuthCodeURL(state), http.StatusFound)
}

// CallbackGitHub finishes the OAuth round trip: sign-in callback, token
// enrichment, then the session cookie.
func (h *Handlers) CallbackGitHub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		WriteError(w, "GitHub sign in was cancelled: "+providerErr, http.StatusUnauthorized)
		return
	}

	ok, err := h.States.Consume(ctx, query.Get("state"))
	if err != nil {
		log.Error().Err(err).Msg("consume oauth state")
		WriteError(w, "Sign in is unavailable", http.StatusServiceUnavailable)
		return
	}
	if !ok {
		WriteError(w, "Invalid or expired sign in state", http.StatusBadRequest)
		return
	}

	account, err := h.Provider.Exchange(ctx, query.Get("code"))
	if err != nil {
		log.Warn().Err(err).Msg("github code exchange failed")
		WriteError(w, "GitHub sign in failed", http.StatusUnauthorized)
		return
	}

	profile, err := h.Provider.Profile(ctx, account)
	if err != nil {
		log.Warn().Err(err).Msg("github profile request failed")
		WriteError(w, "GitHub sign in failed", http.StatusBadGateway)
		return
	}

	user := models.UserFromProfile(profile)

	allowed, err := h.AuthService.SignIn(ctx, user, account, profile)
	if err != nil {
		log.Error().Err(err).Int64("github_id", profile.ID).Msg("sign in callback failed")
		monitoring.CaptureError(ctx, err)
		WriteError(w, "Sign in failed", http.StatusInternalServerError)
		return
	}
	if !allowed {
		WriteError(w, "Access denied", http.StatusForbidden)
		return
	}

	token, err := h.AuthService.EnrichToken(ctx, h.AuthService.NewToken(user, profile), account, profile)
	if err != nil {
		log.Error().Err(err).Msg("enrich session token")
		monitoring.CaptureError(ctx, err)
		WriteError(w, "Sign in failed", http.StatusInternalServerError)
		return
	}

	raw, stored, err := h.Tokens.Encode(token)
	if err != nil {
		log.Error().Err(err).Msg("encode session token")
		WriteError(w, "Sign in failed", http.StatusInternalServerError)
		return
	}

	SetSessionCookie(w, raw, stored.ExpiresAt, h.Cfg.Auth.SecureCookies())
	log.Info().Str("author_id", stored.ID).Msg("signed in")

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GetSession writes the session projection, or null when signed out.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, SessionFromContext(r.Context()), http.StatusOK)
}

func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w, h.Cfg.Auth.SecureCookies())
	writeSuccess(w, MessageResponse{Message: "Signed out"}, http.StatusOK)
}
