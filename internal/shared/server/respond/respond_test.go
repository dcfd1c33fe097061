package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stageErr struct{ err error }

func (e stageErr) Error() string     { return e.err.Error() }
func (e stageErr) StageName() string { return "generate" }

func TestErrorWritesFlatBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/fail", func(c *gin.Context) {
		Error(c, http.StatusInternalServerError, fmt.Errorf("wrapped: %w", stageErr{err: errors.New("openai request timeout")}))
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "wrapped: openai request timeout" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestAttachmentHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/file", func(c *gin.Context) {
		Attachment(c, "application/pdf", "tailored_resume.pdf", []byte("%PDF-1.3"))
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/file", nil))

	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := resp.Header().Get("Content-Disposition"); got != "attachment; filename=tailored_resume.pdf" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if resp.Body.String() != "%PDF-1.3" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}
