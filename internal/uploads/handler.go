package uploads

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/extract"
	"resume-tailor/internal/langdetect"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/server/respond"
	"resume-tailor/internal/shared/storage/scratch"
	"resume-tailor/internal/shared/telemetry"
)

const defaultMaxUploadBytes = 10 << 20

// ExtractFunc pulls text out of the file at path.
type ExtractFunc func(ctx context.Context, path string) (string, error)

// Handler accepts resume uploads and returns their text and language.
type Handler struct {
	Store    *scratch.Store
	Detector langdetect.Detector
	Extract  ExtractFunc
	MaxBytes int64
}

// NewHandler constructs a Handler using extract.ExtractFile.
func NewHandler(store *scratch.Store, detector langdetect.Detector, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	return &Handler{Store: store, Detector: detector, Extract: extract.ExtractFile, MaxBytes: maxBytes}
}

// RegisterRoutes attaches the upload route.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/upload-resume", h.upload)
}

type uploadResponse struct {
	ResumeText string `json:"resume_text"`
	Language   string `json:"language"`
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.IncUpload(metrics.OutcomeFailed)
			respond.Error(c, http.StatusInternalServerError, err)
			return
		}
		metrics.IncUpload(metrics.OutcomeValidation)
		respond.Message(c, http.StatusBadRequest, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	c.Set("fileExt", ext)
	if !extract.Supported(ext) {
		metrics.IncUpload(metrics.OutcomeValidation)
		respond.Error(c, http.StatusBadRequest, extract.UnsupportedError(ext))
		return
	}

	text, lang, err := h.process(c.Request.Context(), fileHeader.Open, ext)
	if err != nil {
		metrics.IncUpload(metrics.OutcomeFailed)
		respond.Error(c, http.StatusInternalServerError, err)
		return
	}
	c.Set("resumeLanguage", lang)
	metrics.IncUpload(metrics.OutcomeOK)

	telemetry.Info("upload.extracted", map[string]any{
		"request_id": c.GetString("requestId"),
		"ext":        ext,
		"chars":      len([]rune(text)),
		"language":   lang,
	})
	respond.OK(c, uploadResponse{ResumeText: text, Language: lang})
}
