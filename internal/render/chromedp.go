package render

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const chromeTimeout = 60 * time.Second

// Chromedp prints the text through headless Chrome. Layout matches the core
// renderer loosely: A4, 12pt, preformatted lines.
type Chromedp struct {
	execPath string
}

// NewChromedp returns a renderer using the Chrome binary at execPath, or the
// one chromedp finds on PATH when execPath is empty.
func NewChromedp(execPath string) *Chromedp {
	return &Chromedp{execPath: strings.TrimSpace(execPath)}
}

// Render prints the text document to PDF.
func (r *Chromedp) Render(ctx context.Context, text string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, chromeTimeout)
	defer cancelRun()

	var pdfBuf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, HTMLDocument(text)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> 8.27 x 11.69 inches
			pdfBuf, _, err = page.PrintToPDF().
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginBottom(pageBreakMargin / 25.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp print: %w", err)
	}
	return pdfBuf, nil
}

// HTMLDocument wraps escaped text in a minimal printable page.
func HTMLDocument(text string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>`)
	b.WriteString(`body{margin:10mm;font-family:Arial,Helvetica,sans-serif;font-size:12pt}`)
	b.WriteString(`pre{font-family:inherit;white-space:pre-wrap;word-wrap:break-word;line-height:10mm;margin:0}`)
	b.WriteString(`</style></head><body><pre>`)
	b.WriteString(html.EscapeString(strings.Join(Lines(text), "\n")))
	b.WriteString(`</pre></body></html>`)
	return b.String()
}
