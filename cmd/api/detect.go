package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"resume-tailor/internal/langdetect"
)

var detectCmd = &cobra.Command{
	Use:   "detect TEXT...",
	Short: "Print the ISO 639-1 code of the text's language",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, err := langdetect.New().Detect(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), lang)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
