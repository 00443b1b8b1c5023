package types

import (
	"fmt"
	"strings"
)

// Mode selects the critique style requested from the analysis service.
type Mode string

const (
	// ModeRoast asks for a brutally honest critique.
	ModeRoast Mode = "roast"
	// ModeProfessional asks for constructive professional feedback.
	ModeProfessional Mode = "professional"
)

// DefaultMode is used when no mode is selected.
const DefaultMode = ModeRoast

// ParseMode converts a user-supplied string into a Mode.
// An empty string yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMode, nil
	case ModeRoast:
		return ModeRoast, nil
	case ModeProfessional:
		return ModeProfessional, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be %q or %q", s, ModeRoast, ModeProfessional)
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeRoast || m == ModeProfessional
}

// ResultTitle is the page title shown above the result panels.
func (m Mode) ResultTitle() string {
	if m == ModeProfessional {
		return "Your Resume Review"
	}
	return "Your Resume Got Flame-Grilled"
}

// FeedbackTitle is the title of the critique panel.
func (m Mode) FeedbackTitle() string {
	if m == ModeProfessional {
		return "Professional Feedback"
	}
	return "The Roast"
}

// AnalyzeResponse is the JSON body returned by POST /analyze.
type AnalyzeResponse struct {
	ResumeText string `json:"resume_text"`
	Feedback   string `json:"feedback"`
}

// Resume returns the resume text as a ResumeDocument.
func (r *AnalyzeResponse) Resume() ResumeDocument {
	return ResumeDocument{RawText: r.ResumeText}
}

// Roast returns the feedback text as a RoastDocument.
func (r *AnalyzeResponse) Roast() RoastDocument {
	return RoastDocument{RawText: r.Feedback}
}
