// Package types provides type definitions for structured data used throughout the resume-roaster system.
package types

// ResumeDocument is the extracted resume text returned by the analysis service.
// It is produced once per successful upload and never mutated.
type ResumeDocument struct {
	RawText string `json:"raw_text"`
}

// RoastDocument is the critique text returned by the analysis service.
// It uses **bold**: headers and inline **bold** spans.
type RoastDocument struct {
	RawText string `json:"raw_text"`
}

// ResumeSection is a titled block of resume content bounded by the next detected header.
type ResumeSection struct {
	Title        string   `json:"title"`
	ContentLines []string `json:"content_lines"`
}

// ContactBlock holds the trailing lines identified as personal contact details.
type ContactBlock struct {
	Lines []string `json:"lines"`
}

// Name returns the first contact line, which is displayed as the name heading.
func (c *ContactBlock) Name() string {
	if c == nil || len(c.Lines) == 0 {
		return ""
	}
	return c.Lines[0]
}
