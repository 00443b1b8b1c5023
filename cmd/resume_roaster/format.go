package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-roaster/internal/extract"
	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format resume and critique text without calling the service",
	Long: "Format existing resume text (or text extracted locally from a PDF) and an optional " +
		"critique exactly as the analyze command would display them.",
	RunE: runFormat,
}

var (
	formatResume   string
	formatPDF      string
	formatFeedback string
	formatMode     string
	formatNoColor  bool
)

func init() {
	formatCmd.Flags().StringVarP(&formatResume, "resume", "r", "", "Path to resume text file")
	formatCmd.Flags().StringVar(&formatPDF, "pdf", "", "Path to a PDF to extract resume text from locally")
	formatCmd.Flags().StringVar(&formatFeedback, "feedback", "", "Path to critique text file")
	formatCmd.Flags().StringVarP(&formatMode, "mode", "m", "", "Mode used for titles: roast or professional (default roast)")
	formatCmd.Flags().BoolVar(&formatNoColor, "no-color", false, "Disable ANSI styling")

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, _ []string) error {
	if formatResume != "" && formatPDF != "" {
		return fmt.Errorf("cannot use --resume with --pdf")
	}
	if formatResume == "" && formatPDF == "" {
		return fmt.Errorf("must provide either --resume or --pdf")
	}

	mode, err := resolveMode(formatMode, types.DefaultMode)
	if err != nil {
		return err
	}

	resumeText, err := loadResumeText(cmd.Context(), formatResume, formatPDF)
	if err != nil {
		return err
	}

	var feedback string
	if formatFeedback != "" {
		data, err := os.ReadFile(formatFeedback)
		if err != nil {
			return fmt.Errorf("failed to read feedback file: %w", err)
		}
		feedback = string(data)
	}

	out := cmd.OutOrStdout()
	printResult(out, cmd.ErrOrStderr(), mode, resumeText, feedback, colorEnabled(out, formatNoColor))
	return nil
}

// loadResumeText reads a text file, or extracts text from a PDF when pdfPath is set.
func loadResumeText(ctx context.Context, textPath, pdfPath string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if pdfPath == "" {
		data, err := os.ReadFile(textPath)
		if err != nil {
			return "", fmt.Errorf("failed to read resume file: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}
	if !extract.IsPDF(data) {
		return "", fmt.Errorf("%s is not a PDF file", pdfPath)
	}
	text, err := extract.PDFText(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	return text, nil
}
