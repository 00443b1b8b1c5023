package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/jonathan/resume-roaster/internal/upload"
)

// subscriberBuffer is the number of pending state updates kept per subscriber.
// Older updates are dropped when a subscriber falls behind.
const subscriberBuffer = 8

// Session is one user's view state plus the upload orchestrator that drives it.
type Session struct {
	ID     uuid.UUID
	upload *upload.Orchestrator

	mu          sync.Mutex
	step        Step
	mode        types.Mode
	lastSeen    time.Time
	nextSubID   int
	subscribers map[int]chan upload.State
}

// New creates a session on the landing step.
func New(analyzer upload.Analyzer, opts ...upload.Option) *Session {
	s := &Session{
		ID:          uuid.New(),
		upload:      upload.New(analyzer, opts...),
		step:        StepLanding,
		mode:        types.DefaultMode,
		lastSeen:    time.Now(),
		subscribers: make(map[int]chan upload.State),
	}
	s.upload.OnChange(s.onUploadChange)
	return s
}

// Upload returns the session's orchestrator.
func (s *Session) Upload() *upload.Orchestrator {
	return s.upload
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Mode returns the selected critique mode.
func (s *Session) Mode() types.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode selects the critique mode for the next upload. Invalid modes are ignored.
func (s *Session) SetMode(m types.Mode) {
	if !m.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// Apply moves the session according to action and returns the new step.
func (s *Session) Apply(action Action) Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = Transition(s.step, action)
	return s.step
}

// Reset cancels any in-flight upload and returns to the landing page.
func (s *Session) Reset() {
	s.upload.Reset()
	s.Apply(ActionReset)
}

// Touch records activity for idle expiry.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// IdleSince returns the time of the last recorded activity.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Subscribe returns a channel of upload state changes and a function that ends the subscription.
func (s *Session) Subscribe() (<-chan upload.State, func()) {
	ch := make(chan upload.State, subscriberBuffer)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(ch)
			}
		})
	}
}

// Close cancels any in-flight upload and ends all subscriptions.
func (s *Session) Close() {
	s.upload.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}

func (s *Session) onUploadChange(state upload.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state.Status == upload.StatusSucceeded {
		s.step = Transition(s.step, ActionUploaded)
	}
	for _, ch := range s.subscribers {
		select {
		case ch <- state:
		default:
		}
	}
}
