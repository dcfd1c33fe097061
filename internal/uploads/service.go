package uploads

import (
	"context"
	"mime/multipart"
)

// process copies the upload into a transient file, extracts it and detects
// the language. The transient file is gone when process returns.
func (h *Handler) process(ctx context.Context, open func() (multipart.File, error), ext string) (string, string, error) {
	src, err := open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	file, err := h.Store.Write(ctx, "temp", ext, src)
	if err != nil {
		return "", "", err
	}
	defer file.Remove()

	text, err := h.Extract(ctx, file.Path)
	if err != nil {
		return "", "", err
	}
	lang, err := h.Detector.Detect(text)
	if err != nil {
		return "", "", err
	}
	return text, lang, nil
}
