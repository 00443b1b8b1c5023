package rendering

import (
	"testing"

	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestFormatRoast(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []types.Fragment
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "header paragraph followed by plain paragraph",
			input: "**Summary**:Great start.\n\nYou over-used adjectives.",
			want: []types.Fragment{
				types.Group(types.Heading("Summary"), types.PlainParagraph("Great start.")),
				types.PlainParagraph("You over-used adjectives."),
			},
		},
		{
			name:  "runs of blank lines collapse",
			input: "one\n\n\n\ntwo\n\n",
			want: []types.Fragment{
				types.PlainParagraph("one"),
				types.PlainParagraph("two"),
			},
		},
		{
			name:  "single newline stays inside the paragraph",
			input: "line one\nline two",
			want:  []types.Fragment{types.PlainParagraph("line one\nline two")},
		},
		{
			name:  "inline emphasis",
			input: "Your **summary** is **vague**.",
			want: []types.Fragment{types.Paragraph(
				types.Run{Text: "Your "},
				types.Run{Text: "summary", Emphasis: true},
				types.Run{Text: " is "},
				types.Run{Text: "vague", Emphasis: true},
				types.Run{Text: "."},
			)},
		},
		{
			name:  "header with emphasis in body",
			input: "**Skills**: list **fewer** buzzwords",
			want: []types.Fragment{types.Group(
				types.Heading("Skills"),
				types.Paragraph(
					types.Run{Text: "list "},
					types.Run{Text: "fewer", Emphasis: true},
					types.Run{Text: " buzzwords"},
				),
			)},
		},
		{
			name:  "header without body",
			input: "**Verdict**:",
			want:  []types.Fragment{types.Group(types.Heading("Verdict"))},
		},
		{
			name:  "bold without colon is not a header",
			input: "**Verdict** it is fine",
			want: []types.Fragment{types.Paragraph(
				types.Run{Text: "Verdict", Emphasis: true},
				types.Run{Text: " it is fine"},
			)},
		},
		{
			name:  "crlf paragraphs",
			input: "a\r\n\r\nb",
			want:  []types.Fragment{types.PlainParagraph("a"), types.PlainParagraph("b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRoast(tt.input))
		})
	}
}

func TestParseRuns_MarkupStaysData(t *testing.T) {
	runs := ParseRuns(`**<script>alert(1)</script>** and <b>raw</b>`)

	assert.Equal(t, []types.Run{
		{Text: "<script>alert(1)</script>", Emphasis: true},
		{Text: " and <b>raw</b>"},
	}, runs)
}

func TestParseRuns_NonNesting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []types.Run
	}{
		{name: "empty", input: "", want: nil},
		{name: "unpaired marker is literal", input: "a ** b", want: []types.Run{{Text: "a ** b"}}},
		{name: "empty span is literal", input: "****", want: []types.Run{{Text: "****"}}},
		{
			name:  "leftmost match first",
			input: "**a**b**c**",
			want:  []types.Run{{Text: "a", Emphasis: true}, {Text: "b"}, {Text: "c", Emphasis: true}},
		},
		{
			name:  "adjacent spans",
			input: "**a** **b**",
			want:  []types.Run{{Text: "a", Emphasis: true}, {Text: " "}, {Text: "b", Emphasis: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRuns(tt.input))
		})
	}
}
