package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_PrintPanel(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPanel("The Roast", FormatRoast("**Summary**: Solid.\n\nTrim the **fluff**, please."))

	out := buf.String()
	assert.Contains(t, out, "│ The Roast")
	assert.Contains(t, out, "Summary:\nSolid.\n")
	assert.Contains(t, out, "Trim the fluff, please.")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrinter_ColorEmphasis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Color = true

	p.PrintPanel("x", []types.Fragment{types.Paragraph(types.Run{Text: "a "}, types.Run{Text: "b", Emphasis: true})})

	assert.Contains(t, buf.String(), "a "+ansiBold+"b"+ansiReset)
}

func TestPrinter_WrapsLongParagraphs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPanel("x", []types.Fragment{types.PlainParagraph(strings.Repeat("word ", 40))})

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), panelWidth)
	}
}

func TestPrinter_PrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResume("Your Resume", RenderResumeText("Experience\n  Engineer | Acme\n  • Shipped things\nTechnical Skills\n  Go, Rust\n\nJane Doe\njane@example.com"))

	out := buf.String()
	assert.Contains(t, out, "Experience\nEngineer\n    Acme\n  • Shipped things\n")
	assert.Contains(t, out, "[Go] [Rust]")
	assert.Contains(t, out, "Jane Doe\njane@example.com\n")
	assert.NotContains(t, out, "no sections detected")
}

func TestPrinter_PrintResumeFallback(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResume("Your Resume", RenderResumeText("  free text"))

	assert.Contains(t, buf.String(), "(no sections detected, showing raw text)")
	assert.Contains(t, buf.String(), "free text")
}

func TestPrinter_StripsServiceEscapes(t *testing.T) {
	feedback := "**Summary**: \x1b[2JCleared.\n\nSee \x1b]8;;http://evil.example\x1b\\this\x1b]8;;\x1b\\ and **fix\u009b31m it**."
	resume := "EXPERIENCE\n\x1b[31mRed line\x07\n• Bullet\x1b[0m here.\n\njane@example.com"

	tests := []struct {
		name  string
		color bool
	}{
		{name: "plain", color: false},
		{name: "color", color: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf)
			p.Color = tt.color

			p.PrintPanel("The \x1b[5mRoast", FormatRoast(feedback))
			p.PrintResume("Your Resume", RenderResumeText(resume))

			out := buf.String()
			assert.Contains(t, out, "Cleared.")
			assert.Contains(t, out, "Red line")
			assert.NotContains(t, out, "\x07")
			assert.NotContains(t, out, "\u009b")
			if tt.color {
				assert.Contains(t, out, ansiBold)
				out = strings.ReplaceAll(out, ansiBold, "")
				out = strings.ReplaceAll(out, ansiReset, "")
			}
			assert.NotContains(t, out, "\x1b")
		})
	}
}
