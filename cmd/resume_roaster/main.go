// Package main provides the resume_roaster command line client and web front end.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_roaster",
	Short: "Resume Roaster client",
	Long: "Resume Roaster uploads a PDF resume to the analysis service and shows the critique " +
		"next to a formatted view of the extracted resume text, in the terminal or in a browser.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
