package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/resume-roaster/internal/analysis"
	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/jonathan/resume-roaster/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyzerFunc func(ctx context.Context, req analysis.Request) (*types.AnalyzeResponse, error)

func (f analyzerFunc) Analyze(ctx context.Context, req analysis.Request) (*types.AnalyzeResponse, error) {
	return f(ctx, req)
}

func okAnalyzer() upload.Analyzer {
	return analyzerFunc(func(context.Context, analysis.Request) (*types.AnalyzeResponse, error) {
		return &types.AnalyzeResponse{ResumeText: "Jane Doe", Feedback: "Fine."}, nil
	})
}

func pdf() *upload.File {
	return &upload.File{Name: "cv.pdf", MediaType: "application/pdf", Data: []byte("%PDF-1.4")}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name   string
		step   Step
		action Action
		want   Step
	}{
		{name: "start", step: StepLanding, action: ActionStart, want: StepUpload},
		{name: "uploaded", step: StepUpload, action: ActionUploaded, want: StepResult},
		{name: "reset from result", step: StepResult, action: ActionReset, want: StepLanding},
		{name: "reset from upload", step: StepUpload, action: ActionReset, want: StepLanding},
		{name: "start ignored on result", step: StepResult, action: ActionStart, want: StepResult},
		{name: "uploaded ignored on landing", step: StepLanding, action: ActionUploaded, want: StepLanding},
		{name: "start ignored on upload", step: StepUpload, action: ActionStart, want: StepUpload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transition(tt.step, tt.action))
		})
	}
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "landing", StepLanding.String())
	assert.Equal(t, "upload", StepUpload.String())
	assert.Equal(t, "result", StepResult.String())
	assert.Equal(t, "unknown", Step(7).String())
}

func TestSession_SuccessfulUploadShowsResult(t *testing.T) {
	s := New(okAnalyzer())
	assert.Equal(t, StepLanding, s.Step())

	assert.Equal(t, StepUpload, s.Apply(ActionStart))

	_, err := s.Upload().Submit(context.Background(), pdf(), s.Mode())
	require.NoError(t, err)

	assert.Equal(t, StepResult, s.Step())
	assert.Equal(t, "Jane Doe", s.Upload().State().Resume.RawText)
}

func TestSession_FailedUploadStaysOnUpload(t *testing.T) {
	s := New(analyzerFunc(func(context.Context, analysis.Request) (*types.AnalyzeResponse, error) {
		return nil, errors.New("unreachable")
	}))
	s.Apply(ActionStart)

	_, err := s.Upload().Submit(context.Background(), pdf(), types.ModeRoast)
	require.Error(t, err)

	assert.Equal(t, StepUpload, s.Step())
	assert.Equal(t, upload.MessageUploadFailed, s.Upload().State().Message)
}

func TestSession_Reset(t *testing.T) {
	s := New(okAnalyzer())
	s.Apply(ActionStart)
	_, err := s.Upload().Submit(context.Background(), pdf(), types.ModeRoast)
	require.NoError(t, err)

	s.Reset()

	assert.Equal(t, StepLanding, s.Step())
	assert.Equal(t, upload.StatusIdle, s.Upload().State().Status)
	assert.Empty(t, s.Upload().State().Resume.RawText)
}

func TestSession_Mode(t *testing.T) {
	s := New(okAnalyzer())
	assert.Equal(t, types.ModeRoast, s.Mode())

	s.SetMode(types.ModeProfessional)
	assert.Equal(t, types.ModeProfessional, s.Mode())

	s.SetMode(types.Mode("bogus"))
	assert.Equal(t, types.ModeProfessional, s.Mode())
}

func TestSession_Subscribe(t *testing.T) {
	s := New(okAnalyzer())
	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	_, err := s.Upload().Submit(context.Background(), pdf(), types.ModeRoast)
	require.NoError(t, err)

	first := <-updates
	second := <-updates
	assert.Equal(t, upload.StatusUploading, first.Status)
	assert.Equal(t, upload.StatusSucceeded, second.Status)
}

func TestSession_UnsubscribeAndClose(t *testing.T) {
	s := New(okAnalyzer())
	updates, unsubscribe := s.Subscribe()
	unsubscribe()
	unsubscribe()

	_, ok := <-updates
	assert.False(t, ok)

	other, _ := s.Subscribe()
	s.Close()
	_, ok = <-other
	assert.False(t, ok)
}

func TestStore_Lookup(t *testing.T) {
	store := NewStore(func() *Session { return New(okAnalyzer()) })

	s, created := store.Lookup("")
	require.True(t, created)
	assert.Equal(t, 1, store.Len())

	again, created := store.Lookup(s.ID.String())
	assert.False(t, created)
	assert.Same(t, s, again)

	_, created = store.Lookup("not-a-uuid")
	assert.True(t, created)
	assert.Equal(t, 2, store.Len())
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore(func() *Session { return New(okAnalyzer()) })
	stale := store.Create()
	fresh := store.Create()

	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-2 * time.Hour)
	stale.mu.Unlock()

	removed := store.Sweep(time.Hour)

	assert.Equal(t, 1, removed)
	_, ok := store.Get(stale.ID)
	assert.False(t, ok)
	_, ok = store.Get(fresh.ID)
	assert.True(t, ok)

	store.Close()
	assert.Equal(t, 0, store.Len())
}
