package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/resume-roaster/internal/analysis"
	"github.com/jonathan/resume-roaster/internal/extract"
	"github.com/jonathan/resume-roaster/internal/types"
)

// DefaultTimeout bounds a single upload, including the service's processing time.
const DefaultTimeout = 30 * time.Second

// Analyzer sends a resume to the analysis service.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*types.AnalyzeResponse, error)
}

var errNoFile = errors.New("no file selected")

// File is a resume selected for upload. MediaType is the type declared by the picker,
// browser or sniffer.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// Orchestrator owns one upload State and is its only mutator.
type Orchestrator struct {
	analyzer Analyzer
	timeout  time.Duration

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	listeners []func(State)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// New creates an idle Orchestrator.
func New(analyzer Analyzer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		analyzer: analyzer,
		timeout:  DefaultTimeout,
		state:    State{Status: StatusIdle, Mode: types.DefaultMode},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OnChange registers fn to be called with every new state.
func (o *Orchestrator) OnChange(fn func(State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = append(o.listeners, fn)
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit validates file, uploads it with mode and waits for the result.
// Returned errors are *Error, or ErrUploadInProgress when another upload is in flight.
func (o *Orchestrator) Submit(ctx context.Context, file *File, mode types.Mode) (*types.AnalyzeResponse, error) {
	if err := validateFile(file); err != nil {
		o.dispatch(Event{Type: EventRejected, Err: err})
		return nil, err
	}
	if !mode.Valid() {
		mode = types.DefaultMode
	}

	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	o.mu.Lock()
	if o.state.Status == StatusUploading {
		o.mu.Unlock()
		return nil, ErrUploadInProgress
	}
	o.state = Reduce(o.state, Event{Type: EventSubmitted, Mode: mode})
	o.cancel = cancel
	generation := o.state.Generation
	snapshot, listeners := o.state, o.listeners
	o.mu.Unlock()
	notify(listeners, snapshot)

	resp, err := o.analyzer.Analyze(reqCtx, analysis.Request{
		FileName: file.Name,
		Data:     file.Data,
		Mode:     mode,
	})
	if err != nil {
		uploadErr := classify(err)
		o.dispatch(Event{Type: EventFailed, Generation: generation, Err: uploadErr})
		return nil, uploadErr
	}

	o.dispatch(Event{Type: EventSucceeded, Generation: generation, Response: resp})
	return resp, nil
}

// Reset abandons any in-flight upload and returns to idle.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.mu.Unlock()
	o.dispatch(Event{Type: EventReset})
}

// Close cancels any in-flight upload. The state is left as is.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *Orchestrator) dispatch(e Event) {
	o.mu.Lock()
	next := Reduce(o.state, e)
	if next == o.state {
		o.mu.Unlock()
		return
	}
	o.state = next
	if next.Status != StatusUploading {
		o.cancel = nil
	}
	listeners := o.listeners
	o.mu.Unlock()
	notify(listeners, next)
}

func notify(listeners []func(State), s State) {
	for _, fn := range listeners {
		fn(s)
	}
}

func validateFile(file *File) *Error {
	if file == nil || len(file.Data) == 0 {
		return &Error{Kind: KindInvalidFileType, Cause: errNoFile}
	}
	if mediaType := extract.NormalizeMediaType(file.MediaType); mediaType != extract.MediaTypePDF {
		return &Error{Kind: KindInvalidFileType, Cause: fmt.Errorf("unsupported media type %q", mediaType)}
	}
	return nil
}
