package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-tailor/internal/extract"
	"resume-tailor/internal/langdetect"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print the text of a resume file and its language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := extract.ExtractFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		lang, err := langdetect.New().Detect(text)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "language: %s\n\n%s\n", lang, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
