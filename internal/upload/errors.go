package upload

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-roaster/internal/analysis"
)

// User-facing messages. Failures are never shown to the user in more detail than this.
const (
	MessageInvalidFileType = "Please upload a valid PDF file."
	MessageUploadFailed    = "Failed to upload your resume. Please try again."
)

// ErrUploadInProgress is returned by Submit while another upload is in flight.
var ErrUploadInProgress = errors.New("an upload is already in progress")

// Kind classifies an upload failure.
type Kind int

const (
	// KindInvalidFileType means the file was missing or not a PDF.
	KindInvalidFileType Kind = iota + 1
	// KindServerError means the service answered with a non-2xx status.
	KindServerError
	// KindNetworkError covers transport failures, timeouts and malformed replies.
	KindNetworkError
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFileType:
		return "InvalidFileType"
	case KindServerError:
		return "ServerError"
	case KindNetworkError:
		return "NetworkError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type returned by Submit.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upload failed (%s): %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("upload failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage is the text shown to the user for this failure.
func (e *Error) UserMessage() string {
	if e.Kind == KindInvalidFileType {
		return MessageInvalidFileType
	}
	return MessageUploadFailed
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var uploadErr *Error
	return errors.As(err, &uploadErr) && uploadErr.Kind == kind
}

// classify maps an analysis client error onto an upload failure kind.
func classify(err error) *Error {
	if analysis.IsStatusError(err) {
		return &Error{Kind: KindServerError, Cause: err}
	}
	return &Error{Kind: KindNetworkError, Cause: err}
}
