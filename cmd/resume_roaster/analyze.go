package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-roaster/internal/analysis"
	"github.com/jonathan/resume-roaster/internal/config"
	"github.com/jonathan/resume-roaster/internal/extract"
	"github.com/jonathan/resume-roaster/internal/rendering"
	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/jonathan/resume-roaster/internal/upload"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Upload a PDF resume and print the critique",
	Long: "Upload a PDF resume to the analysis service, then print the critique and a formatted " +
		"view of the resume text the service extracted.",
	RunE: runAnalyze,
}

var (
	analyzeFile    string
	analyzeMode    string
	analyzeAPIURL  string
	analyzeTimeout string
	analyzeConfig  string
	analyzeJSON    bool
	analyzeNoColor bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to the resume PDF (required)")
	analyzeCmd.Flags().StringVarP(&analyzeMode, "mode", "m", "", "Critique mode: roast or professional (default roast)")
	analyzeCmd.Flags().StringVar(&analyzeAPIURL, "api-url", "", "Analysis service base URL (overrides ROASTER_API_URL)")
	analyzeCmd.Flags().StringVar(&analyzeTimeout, "timeout", "", "Upload timeout, e.g. 30s")
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "Path to JSON config file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw service response as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeNoColor, "no-color", false, "Disable ANSI styling")
	_ = analyzeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(analyzeCmd)
}

// analyzeResult is the --json output.
type analyzeResult struct {
	Mode       types.Mode `json:"mode"`
	ResumeText string     `json:"resume_text"`
	Feedback   string     `json:"feedback"`
}

// analyzeInput is one resume file to submit.
type analyzeInput struct {
	Path string
	Data []byte
	Mode types.Mode
	// Endpoint is shown in the progress line when set.
	Endpoint string
}

type outputOptions struct {
	JSON  bool
	Color bool
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(analyzeConfig, config.Config{
		APIURL:  analyzeAPIURL,
		Mode:    analyzeMode,
		Timeout: analyzeTimeout,
	})
	if err != nil {
		return err
	}
	mode, err := types.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(analyzeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	opts := analysis.DefaultOptions()
	opts.Timeout = cfg.TimeoutDuration()
	client, err := analysis.NewClient(cfg.APIURL, opts)
	if err != nil {
		return fmt.Errorf("failed to create analysis client: %w", err)
	}

	out := cmd.OutOrStdout()
	return analyzeResume(cmd.Context(), out, cmd.ErrOrStderr(),
		upload.New(client, upload.WithTimeout(cfg.TimeoutDuration())),
		analyzeInput{Path: analyzeFile, Data: data, Mode: mode, Endpoint: client.Endpoint()},
		outputOptions{JSON: analyzeJSON, Color: colorEnabled(out, analyzeNoColor)})
}

func analyzeResume(ctx context.Context, out, errOut io.Writer, orch *upload.Orchestrator, in analyzeInput, opts outputOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	name := filepath.Base(in.Path)
	file := &upload.File{
		Name:      name,
		MediaType: extract.DetectMediaType(in.Data, name),
		Data:      in.Data,
	}

	target := name
	if in.Endpoint != "" {
		target = name + " to " + in.Endpoint
	}
	orch.OnChange(func(s upload.State) {
		if s.Status == upload.StatusUploading {
			fmt.Fprintf(errOut, "Uploading %s (%s mode)...\n", target, s.Mode) //nolint:errcheck
		}
	})

	resp, err := orch.Submit(ctx, file, in.Mode)
	if err != nil {
		var uploadErr *upload.Error
		if errors.As(err, &uploadErr) {
			return fmt.Errorf("%s (%w)", uploadErr.UserMessage(), err)
		}
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analyzeResult{Mode: in.Mode, ResumeText: resp.ResumeText, Feedback: resp.Feedback})
	}

	printResult(out, errOut, in.Mode, resp.ResumeText, resp.Feedback, opts.Color)
	return nil
}

// printResult prints the result title, the critique panel and the resume panel.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func printResult(out, errOut io.Writer, mode types.Mode, resumeText, feedback string, color bool) {
	p := rendering.NewPrinter(out)
	p.Color = color

	fmt.Fprintf(out, "%s\n\n", mode.ResultTitle())
	if feedback != "" {
		p.PrintPanel(mode.FeedbackTitle(), rendering.FormatRoast(feedback))
	}

	view := rendering.RenderResumeText(resumeText)
	if view.Warning != nil {
		fmt.Fprintf(errOut, "Warning: %v\n", view.Warning)
	}
	p.PrintResume("Your Resume", view)
}
