package render

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"resume-tailor/internal/shared/storage/scratch"
)

func TestFPDFRenderProducesPDF(t *testing.T) {
	dir := t.TempDir()
	r := NewFPDF(scratch.New(dir))

	data, err := r.Render(context.Background(), "Jane Doe\nSenior Engineer\n\nSkills: Go, Kubernetes, Café")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", data[:min(len(data), 8)])
	}
	if !bytes.Contains(data, []byte("595.28 841.89")) {
		t.Fatal("expected A4 media box in output")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch dir to be empty, found %d entries", len(entries))
	}
}

func TestFPDFRenderDeterministic(t *testing.T) {
	r := NewFPDF(scratch.New(t.TempDir()))
	text := "Line one\nLine two"

	first, err := r.Render(context.Background(), text)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := r.Render(context.Background(), text)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical bytes for identical input")
	}
}

func TestFPDFRenderEmptyText(t *testing.T) {
	data, err := NewFPDF(scratch.New(t.TempDir())).Render(context.Background(), "")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("expected a valid one-page PDF for empty text")
	}
}

func TestFPDFRenderLongTextPaginates(t *testing.T) {
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = "Experience line"
	}
	data, err := NewFPDF(scratch.New(t.TempDir())).Render(context.Background(), strings.Join(lines, "\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := bytes.Count(data, []byte("/Type /Page\n")); n < 2 {
		t.Fatalf("expected several pages, got %d", n)
	}
}

func TestFPDFRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFPDF(scratch.New(t.TempDir())).Render(ctx, "x"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestLines(t *testing.T) {
	got := Lines("a\r\nb\rc\nd")
	if strings.Join(got, "|") != "a|b|c|d" {
		t.Fatalf("unexpected lines %q", got)
	}
}

func TestHTMLDocumentEscapes(t *testing.T) {
	doc := HTMLDocument("<script>alert(1)</script>\nR&D")
	if strings.Contains(doc, "<script>") {
		t.Fatalf("expected text to be escaped: %s", doc)
	}
	if !strings.Contains(doc, "&lt;script&gt;") || !strings.Contains(doc, "R&amp;D") {
		t.Fatalf("unexpected document: %s", doc)
	}
}
