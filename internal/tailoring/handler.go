package tailoring

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/server/respond"
	"resume-tailor/internal/shared/telemetry"
)

const pdfFileName = "tailored_resume.pdf"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the tailoring route.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/tailor-resume", h.tailor)
}

// tailorRequest uses pointers so an absent field can be told apart from an
// empty string.
type tailorRequest struct {
	ResumeText     *string `json:"resume_text"`
	JobDescription *string `json:"job_description"`
	ForceLanguage  *string `json:"force_language"`
	ExportPDF      *bool   `json:"export_pdf"`
}

type tailorResponse struct {
	TailoredResume string `json:"tailored_resume"`
	Language       string `json:"language"`
}

func (r tailorRequest) toRequest() (Request, error) {
	if r.ResumeText == nil {
		return Request{}, fmt.Errorf("%w: resume_text", ErrMissingField)
	}
	if r.JobDescription == nil {
		return Request{}, fmt.Errorf("%w: job_description", ErrMissingField)
	}
	req := Request{ResumeText: *r.ResumeText, JobDescription: *r.JobDescription}
	if r.ForceLanguage != nil {
		req.ForceLanguage = *r.ForceLanguage
	}
	if r.ExportPDF != nil {
		req.ExportPDF = *r.ExportPDF
	}
	return req, nil
}

func (h *Handler) tailor(c *gin.Context) {
	var body tailorRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.IncTailor(metrics.OutcomeValidation)
		respond.Message(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req, err := body.toRequest()
	if err != nil {
		metrics.IncTailor(metrics.OutcomeValidation)
		respond.Error(c, http.StatusBadRequest, err)
		return
	}
	c.Set("exportPdf", req.ExportPDF)

	res, err := h.Svc.Tailor(c.Request.Context(), req)
	if res.Language != "" {
		c.Set("resumeLanguage", res.Language)
	}
	if res.JobLanguage != "" {
		c.Set("jobLanguage", res.JobLanguage)
	}
	if err != nil {
		metrics.IncTailor(metrics.OutcomeFailed)
		respond.Error(c, http.StatusInternalServerError, err)
		return
	}
	metrics.IncTailor(metrics.OutcomeOK)

	if req.ExportPDF {
		telemetry.Info("tailor.pdf", map[string]any{
			"request_id": c.GetString("requestId"),
			"bytes":      len(res.PDF),
		})
		respond.Attachment(c, "application/pdf", pdfFileName, res.PDF)
		return
	}
	respond.OK(c, tailorResponse{TailoredResume: res.TailoredResume, Language: res.Language})
}
