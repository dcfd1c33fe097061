package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resume-tailor/internal/shared/storage/scratch"
)

// Renderer turns plain text into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, text string) ([]byte, error)
}

// Layout of the core-font renderer, in millimetres and points.
const (
	pageBreakMargin = 15.0
	fontFamily      = "Arial"
	fontSize        = 12.0
	lineHeight      = 10.0
)

// fixedDate pins document metadata so identical text gives identical bytes.
var fixedDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// FPDF renders with github.com/go-pdf/fpdf and the Arial core font. The
// document passes through a transient file in the scratch store, removed
// before Render returns.
type FPDF struct {
	store *scratch.Store
}

// NewFPDF returns a core-font renderer writing through store.
func NewFPDF(store *scratch.Store) *FPDF {
	return &FPDF{store: store}
}

// Render lays text out on A4 pages, one multi-cell per line.
func (r *FPDF) Render(ctx context.Context, text string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(fixedDate)
	doc.SetModificationDate(fixedDate)
	doc.SetAutoPageBreak(true, pageBreakMargin)
	doc.AddPage()
	doc.SetFont(fontFamily, "", fontSize)

	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range Lines(text) {
		doc.MultiCell(0, lineHeight, tr(line), "", "", false)
	}
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}

	file, err := r.store.Reserve("tailored_resume", ".pdf")
	if err != nil {
		return nil, err
	}
	defer file.Remove()

	if err := doc.OutputFileAndClose(file.Path); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	data, err := file.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return data, nil
}

// Lines splits text on newlines, treating CRLF and CR as LF.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
