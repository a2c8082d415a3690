// Package main provides the entry point for the resume keywords tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_keywords",
	Short: "Job posting keyword extractor and resume patcher",
	Long:  "Extracts ranked keywords from a job posting, finds the ones missing from a LaTeX resume, and injects them as an invisible white-text block. Runs as a CLI or as an HTTP API server.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
