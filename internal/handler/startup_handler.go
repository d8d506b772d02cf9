package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"pitchdeck/internal/models"
	"pitchdeck/internal/pitchform"
	"pitchdeck/internal/repository"
	"pitchdeck/internal/service"
	"pitchdeck/internal/validation"
)

type SubmissionResponse struct {
	service.ActionResult
	Errors       validation.FieldErrors  `json:"errors,omitempty"`
	Notification *pitchform.Notification `json:"notification,omitempty"`
	Redirect     string                  `json:"redirect,omitempty"`
}

type StartupResponse struct {
	*models.Startup
	Author *AuthorResponse `json:"author,omitempty"`
	Image  string          `json:"image,omitempty"`
}

// submission collects what the form controller reports during one request.
type submission struct {
	notification *pitchform.Notification
	path         string
}

func (s *submission) Notify(n pitchform.Notification) {
	s.notification = &n
}

func (s *submission) Navigate(path string) {
	s.path = path
}

// CreateStartup accepts the multipart pitch form and runs it through the form controller.
func (h *Handlers) CreateStartup(w http.ResponseWriter, r *http.Request) {
	out := &submission{}
	controller := pitchform.NewController(h.PitchService, h.Validate, out, out)

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
			log.Warn().Int64("limit", h.Cfg.MaxUploadSize).Msg("pitch form over the upload limit")
			state, err := controller.Reject(validation.FieldErrors{"image": validation.MsgImageTooLarge})
			h.renderSubmission(w, state, err, out)
		} else {
			WriteError(w, "Invalid form data", http.StatusBadRequest)
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	image, err := readImage(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := models.PitchForm{
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		Category:       r.FormValue("category"),
		IdempotencyKey: r.FormValue("idempotencyKey"),
	}
	pitch := r.FormValue("pitch")

	controller.AttachImage(image)
	state, err := controller.Submit(r.Context(), SessionFromContext(r.Context()), form, pitch)
	h.renderSubmission(w, state, err, out)
}

func (h *Handlers) renderSubmission(w http.ResponseWriter, state pitchform.State, err error, out *submission) {
	if err != nil {
		WriteError(w, err.Error(), http.StatusConflict)
		return
	}

	response := SubmissionResponse{
		ActionResult: state.Result,
		Errors:       state.Errors,
		Notification: out.notification,
		Redirect:     out.path,
	}

	switch state.Kind {
	case pitchform.Success:
		w.Header().Set("Location", "/api/startups/"+state.Result.ID)
		writeSuccess(w, response, http.StatusSeeOther)
	case pitchform.Error:
		writeSuccess(w, response, statusForKind(state.Result.ErrorKind))
	case pitchform.Initial, pitchform.Submitting:
		log.Error().Str("state", state.Kind.String()).Msg("submission finished in a non-terminal state")
		WriteError(w, "Submission did not complete", http.StatusInternalServerError)
	}
}

func (h *Handlers) GetStartup(w http.ResponseWriter, r *http.Request) {
	startupID := mux.Vars(r)["id"]

	startup, err := h.StartupRepo.GetByID(r.Context(), startupID)
	if err != nil {
		if errors.Is(err, repository.ErrStartupNotFound) {
			WriteError(w, "Startup not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	response := StartupResponse{
		Startup: startup,
		Image:   h.assetURL(r.Context(), startup.ImageID),
	}

	author, err := h.AuthorRepo.GetByID(r.Context(), startup.AuthorID)
	if err != nil {
		log.Warn().Err(err).Str("startup_id", startup.ID).Msg("load startup author")
	} else {
		response.Author = &AuthorResponse{Author: author, Image: h.assetURL(r.Context(), author.ImageID)}
	}

	writeSuccess(w, response, http.StatusOK)
}

func readImage(r *http.Request) (*models.Upload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.New("Could not read the image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("Could not read the image")
	}

	return &models.Upload{
		Filename:    header.Filename,
		ContentType: strings.TrimSpace(header.Header.Get("Content-Type")),
		Data:        data,
	}, nil
}

func statusForKind(kind service.ErrorKind) int {
	switch kind {
	case service.ValidationError:
		return http.StatusUnprocessableEntity
	case service.AuthError:
		return http.StatusUnauthorized
	case service.UploadError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
