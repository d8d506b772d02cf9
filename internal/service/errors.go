package service

import "pitchdeck/internal/models"

type ErrorKind string

const (
	ValidationError ErrorKind = "ValidationError"
	AuthError       ErrorKind = "AuthError"
	UploadError     ErrorKind = "UploadError"
	StoreError      ErrorKind = "StoreError"
)

// ActionError is the failure of a server action. The result carries Error(), the message with its cause.
type ActionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

type ActionStatus string

const (
	StatusInitial ActionStatus = "INITIAL"
	StatusSuccess ActionStatus = "SUCCESS"
	StatusError   ActionStatus = "ERROR"
)

// ActionResult is what a server action returns. The created document, if any, is flattened into it.
type ActionResult struct {
	*models.Startup
	Error     string       `json:"error"`
	Status    ActionStatus `json:"status"`
	ErrorKind ErrorKind    `json:"errorKind,omitempty"`
}

func successResult(startup *models.Startup) ActionResult {
	return ActionResult{Startup: startup, Error: "", Status: StatusSuccess}
}

func errorResult(err *ActionError) ActionResult {
	return ActionResult{Error: err.Error(), Status: StatusError, ErrorKind: err.Kind}
}
