package rendering

import (
	"strings"

	"github.com/jonathan/resume-roaster/internal/segment"
	"github.com/jonathan/resume-roaster/internal/types"
)

// RenderSection returns a heading for the section title followed by one fragment per
// non-empty content line.
func RenderSection(section types.ResumeSection) []types.Fragment {
	fragments := make([]types.Fragment, 0, len(section.ContentLines)+1)
	fragments = append(fragments, types.Heading(section.Title))
	for _, line := range section.ContentLines {
		if fragment, ok := RenderLine(line, section.Title); ok {
			fragments = append(fragments, fragment)
		}
	}
	return fragments
}

// RenderContact renders the contact block: the first line as a name, the rest as plain lines.
func RenderContact(contact *types.ContactBlock) []types.Fragment {
	if contact == nil || len(contact.Lines) == 0 {
		return nil
	}
	fragments := make([]types.Fragment, 0, len(contact.Lines))
	fragments = append(fragments, types.ContactName(contact.Name()))
	for _, line := range contact.Lines[1:] {
		fragments = append(fragments, types.ContactLine(line))
	}
	return fragments
}

// ResumeView is the rendered resume panel.
type ResumeView struct {
	Sections [][]types.Fragment
	Contact  []types.Fragment
	// Fallback holds the raw text as plain paragraphs when segmentation found nothing.
	Fallback []types.Fragment
	Warning  *segment.ParseWarning
}

// Fragments flattens the view into a single ordered fragment list.
func (v ResumeView) Fragments() []types.Fragment {
	var out []types.Fragment
	for _, section := range v.Sections {
		out = append(out, section...)
	}
	out = append(out, v.Fallback...)
	return append(out, v.Contact...)
}

// RenderResume renders all sections in order, then the contact block.
func RenderResume(result segment.Result) ResumeView {
	view := ResumeView{Warning: result.Warning()}
	if view.Warning != nil {
		view.Fallback = rawParagraphs(result.RawText)
		return view
	}

	view.Sections = make([][]types.Fragment, 0, len(result.Sections))
	for _, section := range result.Sections {
		view.Sections = append(view.Sections, RenderSection(section))
	}
	view.Contact = RenderContact(result.Contact)
	return view
}

// RenderResumeText segments and renders raw resume text.
func RenderResumeText(rawText string) ResumeView {
	return RenderResume(segment.Segment(rawText))
}

func rawParagraphs(rawText string) []types.Fragment {
	var fragments []types.Fragment
	for _, line := range strings.Split(rawText, "\n") {
		if text := strings.TrimSpace(line); text != "" {
			fragments = append(fragments, types.PlainParagraph(text))
		}
	}
	return fragments
}
