package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-roaster/internal/upload"
)

// MessageFileTooLarge is shown when an upload exceeds maxUploadBytes.
const MessageFileTooLarge = "That file is too large. Resumes must be under 10 MB."

// MessageUploadInProgress is shown when a second upload is sent while one is running.
const MessageUploadInProgress = "Your resume is already being roasted. Hang tight."

// ErrRequest is a malformed or unacceptable request.
type ErrRequest struct {
	Status  int
	Message string
	Cause   error
}

func (e *ErrRequest) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("request error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("request error: %s", e.Message)
}

func (e *ErrRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var reqErr *ErrRequest
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	if errors.Is(err, upload.ErrUploadInProgress) {
		return http.StatusConflict
	}
	var uploadErr *upload.Error
	if errors.As(err, &uploadErr) {
		switch uploadErr.Kind {
		case upload.KindInvalidFileType:
			return http.StatusUnsupportedMediaType
		case upload.KindServerError, upload.KindNetworkError:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	var reqErr *ErrRequest
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	if errors.Is(err, upload.ErrUploadInProgress) {
		return MessageUploadInProgress
	}
	var uploadErr *upload.Error
	if errors.As(err, &uploadErr) {
		return uploadErr.UserMessage()
	}
	return upload.MessageUploadFailed
}
