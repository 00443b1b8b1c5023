// Package upload owns the lifecycle of a single resume upload: validation, the request to
// the analysis service, and the state transitions that drive which view is shown.
package upload

import (
	"github.com/jonathan/resume-roaster/internal/types"
)

// Status is the phase of the upload lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusUploading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusUploading:
		return "uploading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the upload lifecycle. Resume and Roast are set only when
// Status is StatusSucceeded; Message and FailureKind only when it is StatusFailed.
type State struct {
	Status      Status
	Mode        types.Mode
	Resume      types.ResumeDocument
	Roast       types.RoastDocument
	Message     string
	FailureKind Kind
	// Generation increases with every accepted submission. Completions carrying an
	// older generation are ignored.
	Generation uint64
}

// EventType identifies an Event.
type EventType int

const (
	// EventSubmitted starts a new upload.
	EventSubmitted EventType = iota + 1
	// EventRejected records a failure detected before any request was made.
	EventRejected
	// EventSucceeded completes the upload identified by Generation.
	EventSucceeded
	// EventFailed fails the upload identified by Generation.
	EventFailed
	// EventReset returns to idle, abandoning any in-flight upload.
	EventReset
)

// Event is an input to Reduce.
type Event struct {
	Type       EventType
	Generation uint64
	Mode       types.Mode
	Response   *types.AnalyzeResponse
	Err        *Error
}

// Reduce returns the state that follows s after e. It has no side effects.
func Reduce(s State, e Event) State {
	switch e.Type {
	case EventSubmitted:
		if s.Status == StatusUploading {
			return s
		}
		return State{Status: StatusUploading, Mode: e.Mode, Generation: s.Generation + 1}

	case EventRejected:
		if s.Status == StatusUploading || e.Err == nil {
			return s
		}
		return State{
			Status:      StatusFailed,
			Mode:        s.Mode,
			Message:     e.Err.UserMessage(),
			FailureKind: e.Err.Kind,
			Generation:  s.Generation,
		}

	case EventSucceeded:
		if !s.current(e) || e.Response == nil {
			return s
		}
		return State{
			Status:     StatusSucceeded,
			Mode:       s.Mode,
			Resume:     e.Response.Resume(),
			Roast:      e.Response.Roast(),
			Generation: s.Generation,
		}

	case EventFailed:
		if !s.current(e) || e.Err == nil {
			return s
		}
		return State{
			Status:      StatusFailed,
			Mode:        s.Mode,
			Message:     e.Err.UserMessage(),
			FailureKind: e.Err.Kind,
			Generation:  s.Generation,
		}

	case EventReset:
		return State{Status: StatusIdle, Mode: s.Mode, Generation: s.Generation}
	}
	return s
}

// current reports whether e completes the in-flight upload of s.
func (s State) current(e Event) bool {
	return s.Status == StatusUploading && e.Generation == s.Generation
}
