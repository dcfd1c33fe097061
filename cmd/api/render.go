package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-tailor/internal/render"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/shared/storage/scratch"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a plain-text file as PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output PDF path (required)")
	_ = renderCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	cfg := config.Load()
	var r render.Renderer = render.NewFPDF(scratch.New(cfg.ScratchDir))
	if cfg.PDFRenderer == "chromedp" {
		r = render.NewChromedp(cfg.ChromePath)
	}

	data, err := r.Render(cmd.Context(), string(text))
	if err != nil {
		return err
	}
	if err := os.WriteFile(renderOut, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", renderOut, len(data))
	return nil
}
