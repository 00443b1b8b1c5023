package server

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-roaster/internal/extract"
	"github.com/jonathan/resume-roaster/internal/rendering"
	"github.com/jonathan/resume-roaster/internal/session"
	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/jonathan/resume-roaster/internal/upload"
)

// SessionCookie names the cookie holding the session ID.
const SessionCookie = "roaster_session"

// maxUploadBytes caps the size of a resume upload.
const maxUploadBytes = 10 << 20

// keepAliveInterval spaces comment lines on idle event streams.
const keepAliveInterval = 25 * time.Second

type testimonial struct {
	Name  string
	Quote string
}

var testimonials = []testimonial{
	{Name: "A Developer", Quote: "My resume cried. 10/10."},
	{Name: "HR Manager", Quote: "Savage but accurate. I hired the person after they fixed everything."},
	{Name: "Recent Grad", Quote: "I didn't know my resume was that bad. Now I do."},
}

// pageData is passed to every page template.
type pageData struct {
	Title string
	Step  string
	Year  int
	Mode  types.Mode

	Testimonials []testimonial

	Message   string
	Uploading bool

	ResultTitle   string
	FeedbackTitle string
	Roast         template.HTML
	Resume        template.HTML
	Warning       string
}

// UploadResponse is the JSON reply to POST /upload when the client asks for JSON.
type UploadResponse struct {
	Mode       types.Mode `json:"mode"`
	ResumeText string     `json:"resume_text"`
	Feedback   string     `json:"feedback"`
	Location   string     `json:"location"`
}

// stateEvent is the payload of "state" events on /events.
type stateEvent struct {
	Status  string     `json:"status"`
	Mode    types.Mode `json:"mode"`
	Message string     `json:"message,omitempty"`
}

// session returns the caller's session, creating one and setting the cookie when needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var raw string
	if c, err := r.Cookie(SessionCookie); err == nil {
		raw = c.Value
	}
	sess, created := s.sessions.Lookup(raw)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID.String(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// viewPath is where the page for step lives.
func viewPath(step session.Step) string {
	switch step {
	case session.StepUpload:
		return "/upload"
	case session.StepResult:
		return "/result"
	default:
		return "/"
	}
}

// redirectToStep sends the browser to the current step's page unless it is already there.
func redirectToStep(w http.ResponseWriter, r *http.Request, sess *session.Session, want session.Step) bool {
	if step := sess.Step(); step != want {
		http.Redirect(w, r, viewPath(step), http.StatusSeeOther)
		return true
	}
	return false
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data pageData) {
	data.Year = time.Now().Year()
	if data.Title == "" {
		data.Title = "Resume Roaster"
	}

	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("Error rendering %s page: %v", page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// formMode reads an explicit, valid "mode" form value.
func formMode(r *http.Request) (types.Mode, bool) {
	raw := r.FormValue("mode")
	if raw == "" {
		return "", false
	}
	mode, err := types.ParseMode(raw)
	return mode, err == nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// handleLanding shows the landing page
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if redirectToStep(w, r, sess, session.StepLanding) {
		return
	}
	s.render(w, http.StatusOK, "landing", pageData{
		Step:         session.StepLanding.String(),
		Mode:         sess.Mode(),
		Testimonials: testimonials,
	})
}

// handleStart moves from the landing page to the upload form
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if mode, ok := formMode(r); ok {
		sess.SetMode(mode)
	}
	sess.Apply(session.ActionStart)
	http.Redirect(w, r, viewPath(sess.Step()), http.StatusSeeOther)
}

// handleUploadPage shows the upload form with the last failure, if any
func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if redirectToStep(w, r, sess, session.StepUpload) {
		return
	}
	state := sess.Upload().State()
	s.render(w, http.StatusOK, "upload", pageData{
		Title:     "Upload Your Resume - Resume Roaster",
		Step:      session.StepUpload.String(),
		Mode:      sess.Mode(),
		Message:   state.Message,
		Uploading: state.Status == upload.StatusUploading,
	})
}

// handleUpload forwards the submitted resume to the analysis service and waits for it
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess.Step() != session.StepUpload {
		if wantsJSON(r) {
			s.errorResponse(w, http.StatusConflict, "start a new roast first")
			return
		}
		http.Redirect(w, r, viewPath(sess.Step()), http.StatusSeeOther)
		return
	}

	file, err := readUpload(w, r)
	if err != nil {
		s.uploadFailed(w, r, sess, err)
		return
	}
	if mode, ok := formMode(r); ok {
		sess.SetMode(mode)
	}

	mode := sess.Mode()
	log.Printf("[upload] session=%s file=%q type=%s bytes=%d mode=%s",
		sess.ID, nameOf(file), mediaTypeOf(file), sizeOf(file), mode)

	resp, err := sess.Upload().Submit(r.Context(), file, mode)
	if err != nil {
		log.Printf("[upload] session=%s failed: %v", sess.ID, err)
		s.uploadFailed(w, r, sess, err)
		return
	}
	log.Printf("[upload] session=%s succeeded (%d chars of feedback)", sess.ID, len(resp.Feedback))

	location := viewPath(sess.Step())
	if wantsJSON(r) {
		s.jsonResponse(w, http.StatusOK, UploadResponse{
			Mode:       mode,
			ResumeText: resp.ResumeText,
			Feedback:   resp.Feedback,
			Location:   location,
		})
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (s *Server) uploadFailed(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	status, message := HTTPStatus(err), UserMessage(err)
	if wantsJSON(r) {
		s.errorResponse(w, status, message)
		return
	}
	s.render(w, status, "upload", pageData{
		Title:     "Upload Your Resume - Resume Roaster",
		Step:      session.StepUpload.String(),
		Mode:      sess.Mode(),
		Message:   message,
		Uploading: errors.Is(err, upload.ErrUploadInProgress),
	})
}

// readUpload reads the "file" part. A missing part yields a nil file, which the
// orchestrator rejects as an invalid file type.
func readUpload(w http.ResponseWriter, r *http.Request) (*upload.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrRequest{Status: http.StatusRequestEntityTooLarge, Message: MessageFileTooLarge, Cause: err}
		}
		return nil, &ErrRequest{Status: http.StatusBadRequest, Message: upload.MessageUploadFailed, Cause: err}
	}

	part, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &ErrRequest{Status: http.StatusBadRequest, Message: upload.MessageUploadFailed, Cause: err}
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, &ErrRequest{Status: http.StatusBadRequest, Message: upload.MessageUploadFailed, Cause: err}
	}
	if len(data) > maxUploadBytes {
		return nil, &ErrRequest{Status: http.StatusRequestEntityTooLarge, Message: MessageFileTooLarge}
	}

	mediaType := extract.NormalizeMediaType(header.Header.Get("Content-Type"))
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = extract.DetectMediaType(data, header.Filename)
	}
	return &upload.File{Name: header.Filename, MediaType: mediaType, Data: data}, nil
}

func nameOf(f *upload.File) string {
	if f == nil {
		return ""
	}
	return f.Name
}

func mediaTypeOf(f *upload.File) string {
	if f == nil {
		return "none"
	}
	return f.MediaType
}

func sizeOf(f *upload.File) int {
	if f == nil {
		return 0
	}
	return len(f.Data)
}

// handleResult shows the critique and the formatted resume side by side
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if redirectToStep(w, r, sess, session.StepResult) {
		return
	}
	state := sess.Upload().State()

	roast, err := rendering.HTML(rendering.FormatRoast(state.Roast.RawText))
	if err != nil {
		log.Printf("Error rendering roast: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	view := rendering.RenderResumeText(state.Resume.RawText)
	resume, err := rendering.ResumeHTML(view)
	if err != nil {
		log.Printf("Error rendering resume: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:         state.Mode.ResultTitle() + " - Resume Roaster",
		Step:          session.StepResult.String(),
		Mode:          state.Mode,
		ResultTitle:   state.Mode.ResultTitle(),
		FeedbackTitle: state.Mode.FeedbackTitle(),
		Roast:         roast,
		Resume:        resume,
	}
	if view.Warning != nil {
		log.Printf("[result] session=%s: %v", sess.ID, view.Warning)
		data.Warning = "We couldn't find any sections in your resume, so here it is as we read it."
	}
	s.render(w, http.StatusOK, "result", data)
}

// handleRoastText returns the raw critique for copying
func (s *Server) handleRoastText(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess.Step() != session.StepResult {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, sess.Upload().State().Roast.RawText)
}

// handleReset abandons any upload and returns to the landing page
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Reset()
	http.Redirect(w, r, viewPath(sess.Step()), http.StatusSeeOther)
}

// handleEvents streams upload state changes for the caller's session
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	updates, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	send := func(state upload.State) error {
		if err := sse.WriteEvent("state", stateEvent{
			Status:  state.Status.String(),
			Mode:    state.Mode,
			Message: state.Message,
		}); err != nil {
			return err
		}
		if state.Status == upload.StatusSucceeded {
			return sse.WriteComplete(viewPath(session.StepResult))
		}
		return nil
	}

	if err := send(sess.Upload().State()); err != nil {
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.closing:
			return
		case state, ok := <-updates:
			if !ok {
				return
			}
			if err := send(state); err != nil {
				return
			}
		case <-keepAlive.C:
			if err := sse.WriteKeepAlive(); err != nil {
				return
			}
		}
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
}
