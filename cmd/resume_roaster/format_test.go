package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadResumeText_TextFile(t *testing.T) {
	path := writeTemp(t, "resume.txt", sampleResume)

	text, err := loadResumeText(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, sampleResume, text)
}

func TestLoadResumeText_MissingFile(t *testing.T) {
	_, err := loadResumeText(context.Background(), "/nonexistent/resume.txt", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume file")
}

func TestLoadResumeText_NotAPDF(t *testing.T) {
	path := writeTemp(t, "resume.pdf", "just text")

	_, err := loadResumeText(context.Background(), "", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a PDF file")
}

func TestPrintResult_ProfessionalTitles(t *testing.T) {
	var out, errOut bytes.Buffer

	printResult(&out, &errOut, types.ModeProfessional, sampleResume, "Solid work.", false)

	assert.Contains(t, out.String(), "Your Resume Review")
	assert.Contains(t, out.String(), "Professional Feedback")
	assert.Contains(t, out.String(), "Solid work.")
	assert.Empty(t, errOut.String())
}

func TestPrintResult_NoFeedbackSkipsPanel(t *testing.T) {
	var out, errOut bytes.Buffer

	printResult(&out, &errOut, types.ModeRoast, sampleResume, "", false)

	assert.NotContains(t, out.String(), "The Roast")
	assert.Contains(t, out.String(), "Your Resume")
}

func TestPrintResult_WarnsWhenNothingDetected(t *testing.T) {
	var out, errOut bytes.Buffer

	printResult(&out, &errOut, types.ModeRoast, "   \n  lowercase only\n", "", false)

	assert.Contains(t, errOut.String(), "Warning:")
	assert.Contains(t, out.String(), "(no sections detected, showing raw text)")
	assert.Contains(t, out.String(), "lowercase only")
}

func TestFormatCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "neither resume nor pdf",
			args:        []string{"format"},
			errorString: "must provide either --resume or --pdf",
		},
		{
			name:        "both resume and pdf",
			args:        []string{"format", "--resume", "a.txt", "--pdf", "a.pdf"},
			errorString: "cannot use --resume with --pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatResume, formatPDF = "", ""
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs(tt.args)
			t.Cleanup(func() {
				rootCmd.SetArgs(nil)
				formatResume, formatPDF = "", ""
			})

			err := rootCmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}
