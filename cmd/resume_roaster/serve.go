package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-roaster/internal/config"
	"github.com/jonathan/resume-roaster/internal/server"
	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveAPIURL     string
	serveMode       string
	serveTimeout    string
	serveConfig     string
	serveSessionTTL time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web front end",
	Long:  `Start an HTTP server that walks visitors through uploading a resume and shows the critique.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080, or PORT)")
	serveCmd.Flags().StringVar(&serveAPIURL, "api-url", "", "Analysis service base URL (overrides ROASTER_API_URL)")
	serveCmd.Flags().StringVar(&serveMode, "mode", "", "Mode preselected for new visitors: roast or professional")
	serveCmd.Flags().StringVar(&serveTimeout, "timeout", "", "Upload timeout, e.g. 30s")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to JSON config file")
	serveCmd.Flags().DurationVar(&serveSessionTTL, "session-ttl", server.DefaultSessionTTL, "Drop sessions idle for this long")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfig, config.Config{
		APIURL:  serveAPIURL,
		Mode:    serveMode,
		Timeout: serveTimeout,
		Port:    servePort,
	})
	if err != nil {
		return err
	}
	mode, err := types.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		APIURL:     cfg.APIURL,
		Timeout:    cfg.TimeoutDuration(),
		Mode:       mode,
		SessionTTL: serveSessionTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
