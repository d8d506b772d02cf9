// Package pitchform drives the pitch submission form: it collects the image,
// validates the candidate and hands it to the server action.
package pitchform

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"

	"pitchdeck/internal/models"
	"pitchdeck/internal/service"
	"pitchdeck/internal/validation"
)

type Kind int

const (
	Initial Kind = iota
	Submitting
	Success
	Error
)

func (k Kind) String() string {
	switch k {
	case Initial:
		return "initial"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

const (
	msgCreated        = "Your startup pitch has been created successfully"
	msgCheckInputs    = "Please check your inputs and try again"
	msgUnexpected     = "An unexpected error has occurred"
	msgValidationFail = "Validation failed"
)

var ErrSubmitting = errors.New("a submission is already in progress")

// State is what the form renders. Errors is only set for validation failures.
type State struct {
	Kind   Kind
	Result service.ActionResult
	Errors validation.FieldErrors
}

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

type Notifier interface {
	Notify(n Notification)
}

type Navigator interface {
	Navigate(path string)
}

type Action interface {
	CreatePitch(ctx context.Context, session *models.Session, form models.PitchForm, pitch string) service.ActionResult
}

type Validator interface {
	ValidatePitch(form models.PitchForm, pitch string) validation.FieldErrors
}

type Controller struct {
	mu      sync.Mutex
	state   State
	image   *models.Upload
	preview string

	action    Action
	validator Validator
	notifier  Notifier
	navigator Navigator
}

func NewController(action Action, validator Validator, notifier Notifier, navigator Navigator) *Controller {
	return &Controller{
		state:     State{Kind: Initial, Result: service.ActionResult{Status: service.StatusInitial}},
		action:    action,
		validator: validator,
		notifier:  notifier,
		navigator: navigator,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Preview() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preview
}

// SelectImage replaces the selected image. The preview is built in the
// background; the returned channel is closed once it is available.
func (c *Controller) SelectImage(img *models.Upload) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	c.image = img
	c.preview = ""
	c.mu.Unlock()

	if img == nil || img.Size() == 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		preview := dataURL(img)

		c.mu.Lock()
		defer c.mu.Unlock()
		// a newer selection wins
		if c.image == img {
			c.preview = preview
		}
	}()

	return done
}

// AttachImage replaces the selected image without building a preview.
func (c *Controller) AttachImage(img *models.Upload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = img
	c.preview = ""
}

// Submit runs one submission. It is rejected while another one is in flight.
func (c *Controller) Submit(ctx context.Context, session *models.Session, form models.PitchForm, pitch string) (State, error) {
	c.mu.Lock()
	if c.state.Kind == Submitting {
		c.mu.Unlock()
		return State{Kind: Submitting}, ErrSubmitting
	}
	previous := c.state.Result
	c.state = State{Kind: Submitting, Result: previous}
	form.Image = c.image
	c.mu.Unlock()

	return c.finish(c.submit(ctx, session, form, pitch)), nil
}

func (c *Controller) submit(ctx context.Context, session *models.Session, form models.PitchForm, pitch string) (state State) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("pitch submission failed unexpectedly")
			c.notifier.Notify(Notification{Title: "Error", Description: msgUnexpected, Variant: VariantDestructive})
			state = State{
				Kind:   Error,
				Result: service.ActionResult{Error: msgUnexpected, Status: service.StatusError},
			}
		}
	}()

	if fieldErrors := c.validator.ValidatePitch(form, pitch); len(fieldErrors) > 0 {
		return c.invalid(fieldErrors)
	}

	result := c.action.CreatePitch(ctx, session, form, pitch)

	switch result.Status {
	case service.StatusSuccess:
		c.notifier.Notify(Notification{Title: "Success", Description: msgCreated, Variant: VariantDefault})
		c.navigator.Navigate("/startup/" + result.ID)
		return State{Kind: Success, Result: result}
	default:
		description := result.Error
		if description == "" {
			description = msgUnexpected
		}
		c.notifier.Notify(Notification{Title: "Error", Description: description, Variant: VariantDestructive})
		return State{Kind: Error, Result: result}
	}
}

// Reject ends the submission with field errors found before the form could be read,
// such as a body over the upload limit. The action is not called.
func (c *Controller) Reject(fieldErrors validation.FieldErrors) (State, error) {
	c.mu.Lock()
	if c.state.Kind == Submitting {
		c.mu.Unlock()
		return State{Kind: Submitting}, ErrSubmitting
	}
	c.mu.Unlock()

	return c.finish(c.invalid(fieldErrors)), nil
}

func (c *Controller) invalid(fieldErrors validation.FieldErrors) State {
	c.notifier.Notify(Notification{Title: "Error", Description: msgCheckInputs, Variant: VariantDestructive})
	return State{
		Kind:   Error,
		Errors: fieldErrors,
		Result: service.ActionResult{
			Error:     msgValidationFail,
			Status:    service.StatusError,
			ErrorKind: service.ValidationError,
		},
	}
}

func (c *Controller) finish(state State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	return state
}

func dataURL(img *models.Upload) string {
	contentType := img.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(img.Data).String()
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
