package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	// ErrUnsupportedFormat is returned for extensions outside SupportedExtensions.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrInvalidEncoding is returned when extracted bytes are not UTF-8.
	ErrInvalidEncoding = errors.New("extracted text is not valid utf-8")
)

// SupportedExtensions lists accepted upload extensions in display order.
var SupportedExtensions = []string{".pdf", ".docx", ".doc", ".txt", ".rtf"}

// Supported reports whether ext (with leading dot, any case) can be extracted.
func Supported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, s := range SupportedExtensions {
		if s == ext {
			return true
		}
	}
	return false
}

// UnsupportedError describes a rejected extension together with the accepted ones.
func UnsupportedError(ext string) error {
	return fmt.Errorf("%w: %s. Supported formats: [%s]", ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions, " "))
}

// ExtractFile pulls plain text out of the file at path. The extension of path
// selects the decoder, so transient copies must keep the original extension.
// Libraries used: github.com/ledongthuc/pdf (PDF), github.com/nguyenthenguyen/docx
// (DOCX) and github.com/richardlehane/mscfb (legacy DOC).
func ExtractFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	var (
		raw []byte
		err error
	)
	switch ext {
	case ".pdf":
		raw, err = extractPDF(path)
	case ".docx":
		raw, err = extractDOCX(path)
	case ".doc":
		raw, err = extractDOC(path)
	case ".rtf":
		raw, err = extractRTF(path)
	case ".txt":
		raw, err = os.ReadFile(path)
	default:
		return "", UnsupportedError(ext)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", ext, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("extract %s: %w", ext, ErrInvalidEncoding)
	}
	return string(raw), nil
}

func extractPDF(path string) ([]byte, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func extractDOCX(path string) ([]byte, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return []byte(stripDocxXML(doc.Editable().GetContent())), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
