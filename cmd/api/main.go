// Package main provides the entry point for the resume tailoring API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Resume tailoring HTTP API",
	Long:          "Extracts resume text, detects and normalizes languages, tailors resumes to job descriptions with an LLM and renders the result as PDF.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
