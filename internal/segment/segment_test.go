package segment

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Summary
Backend engineer with eight years of experience.
Experience
  Engineer | Acme Corp | 2020-2023
  • Built the billing pipeline
Technical Skills
  Go, Rust, TypeScript

Jane Doe
jane@example.com
+1 555 0100`

func TestSegment_EmptyInput(t *testing.T) {
	result := Segment("")

	assert.Empty(t, result.Sections)
	assert.Nil(t, result.Contact)
	require.NotNil(t, result.Warning())
}

func TestSegment_FullResume(t *testing.T) {
	result := Segment(sampleResume)

	require.NotNil(t, result.Contact)
	assert.Equal(t, []string{"Jane Doe", "jane@example.com", "+1 555 0100"}, result.Contact.Lines)

	require.Len(t, result.Sections, 3)
	assert.Equal(t, "Summary", result.Sections[0].Title)
	assert.Equal(t, []string{"Backend engineer with eight years of experience."}, result.Sections[0].ContentLines)
	assert.Equal(t, "Experience", result.Sections[1].Title)
	assert.Equal(t, []string{"Engineer | Acme Corp | 2020-2023", "• Built the billing pipeline"}, result.Sections[1].ContentLines)
	assert.Equal(t, "Technical Skills", result.Sections[2].Title)
	assert.Equal(t, []string{"Go, Rust, TypeScript", ""}, result.Sections[2].ContentLines)
	assert.Nil(t, result.Warning())
}

func TestSegment_ContactStopsAtFirstNonQualifyingLine(t *testing.T) {
	text := "Education\n  State University\n  first@example.com\n\nsecond@example.com\n+44 20 7946 0000"

	result := Segment(text)

	require.NotNil(t, result.Contact)
	assert.Equal(t, []string{"second@example.com", "+44 20 7946 0000"}, result.Contact.Lines)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, []string{"State University", "first@example.com", ""}, result.Sections[0].ContentLines)
}

func TestSegment_TrailingContactLinesExcludedFromLastSection(t *testing.T) {
	text := "Projects\n  - resume roaster\nme@example.com\n+1 222 333"

	result := Segment(text)

	require.Len(t, result.Sections, 1)
	assert.Equal(t, []string{"- resume roaster"}, result.Sections[0].ContentLines)
	require.NotNil(t, result.Contact)
	assert.Equal(t, []string{"me@example.com", "+1 222 333"}, result.Contact.Lines)
}

func TestSegment_NoHeaders(t *testing.T) {
	text := "  indented line one\n  - indented line two\n2019 something happened"

	result := Segment(text)

	assert.Empty(t, result.Sections)
	assert.Nil(t, result.Contact)
	warning := result.Warning()
	require.NotNil(t, warning)
	assert.Equal(t, 3, warning.Lines)
	assert.Contains(t, warning.Error(), "no sections")
}

func TestSegment_LinesBeforeFirstHeaderDiscarded(t *testing.T) {
	text := "  preamble\nSkills\n  Go"

	result := Segment(text)

	require.Len(t, result.Sections, 1)
	assert.Equal(t, types.ResumeSection{Title: "Skills", ContentLines: []string{"Go"}}, result.Sections[0])
}

func TestSegment_EmptySectionClosedByNextHeader(t *testing.T) {
	text := "Awards\nLanguages\n  English, French"

	result := Segment(text)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, "Awards", result.Sections[0].Title)
	assert.Empty(t, result.Sections[0].ContentLines)
	assert.Equal(t, "Languages", result.Sections[1].Title)
}

func TestSegment_FinalSectionWithoutContentDropped(t *testing.T) {
	result := Segment("Summary\n  text\nHobbies")

	require.Len(t, result.Sections, 1)
	assert.Equal(t, "Summary", result.Sections[0].Title)
}

func TestSegment_DuplicateTitlesPreserved(t *testing.T) {
	result := Segment("Projects\n  one\nProjects\n  two")

	require.Len(t, result.Sections, 2)
	assert.Equal(t, "Projects", result.Sections[0].Title)
	assert.Equal(t, "Projects", result.Sections[1].Title)
	assert.Equal(t, []string{"two"}, result.Sections[1].ContentLines)
}

func TestSegment_CRLFInput(t *testing.T) {
	result := Segment("Summary\r\n  hello\r\n")

	require.Len(t, result.Sections, 1)
	assert.Equal(t, "Summary", result.Sections[0].Title)
	assert.Equal(t, []string{"hello", ""}, result.Sections[0].ContentLines)
}

func TestIsSectionHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{line: "Experience", want: true},
		{line: "Technical Skills", want: true},
		{line: "", want: false},
		{line: "   ", want: false},
		{line: " Experience", want: false},
		{line: "\tExperience", want: false},
		{line: strings.Repeat("x", 29), want: true},
		{line: strings.Repeat("x", 30), want: false},
		{line: "Engineer | Acme", want: false},
		{line: "2020 Highlights", want: false},
		{line: "Full-Stack", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSectionHeader(tt.line))
		})
	}
}

func TestIsContactLine(t *testing.T) {
	assert.True(t, IsContactLine("jane@example.com"))
	assert.True(t, IsContactLine("+1 555 0100"))
	assert.True(t, IsContactLine("Jane Doe"))
	assert.True(t, IsContactLine("Contact: Jane Doe, Berlin"))
	assert.False(t, IsContactLine("jane doe"))
	assert.False(t, IsContactLine(""))
	assert.False(t, IsContactLine("Experience"))
}
