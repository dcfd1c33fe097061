package tailoring

import (
	"context"
	"time"

	"resume-tailor/internal/langdetect"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/render"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/translate"
)

// Request is a tailoring job. ForceLanguage, when set, replaces detection of
// the resume language.
type Request struct {
	ResumeText     string
	JobDescription string
	ForceLanguage  string
	ExportPDF      bool
}

// Result carries either the tailored text or, for ExportPDF requests, the
// rendered document.
type Result struct {
	TailoredResume string
	Language       string
	JobLanguage    string
	PDF            []byte
}

// Service runs the tailoring pipeline. Stages run strictly in order and the
// first failure ends the run.
type Service struct {
	Detector   langdetect.Detector
	Translator translate.Translator
	LLM        llm.Client
	Renderer   render.Renderer
}

// Tailor detects languages, normalizes both texts to English, asks the model
// for a tailored resume and converts it back to the resume language.
func (s *Service) Tailor(ctx context.Context, req Request) (Result, error) {
	var (
		res        Result
		resumeEN   string
		jobEN      string
		tailoredEN string
	)

	resumeLang := req.ForceLanguage
	if resumeLang == "" {
		if err := s.stage(StageDetectResume, func() (err error) {
			resumeLang, err = s.Detector.Detect(req.ResumeText)
			return err
		}); err != nil {
			return res, err
		}
	}
	res.Language = resumeLang

	if err := s.stage(StageDetectJob, func() (err error) {
		res.JobLanguage, err = s.Detector.Detect(req.JobDescription)
		return err
	}); err != nil {
		return res, err
	}

	if err := s.stage(StageTranslateResume, func() (err error) {
		resumeEN, err = translate.ToEnglish(ctx, s.Translator, req.ResumeText, resumeLang)
		return err
	}); err != nil {
		return res, err
	}
	if err := s.stage(StageTranslateJob, func() (err error) {
		jobEN, err = translate.ToEnglish(ctx, s.Translator, req.JobDescription, res.JobLanguage)
		return err
	}); err != nil {
		return res, err
	}

	if err := s.stage(StageGenerate, func() (err error) {
		tailoredEN, err = llm.Tailor(ctx, s.LLM, llm.TailorInput{ResumeText: resumeEN, JobDescription: jobEN})
		return err
	}); err != nil {
		return res, err
	}

	if err := s.stage(StageTranslateBack, func() (err error) {
		res.TailoredResume, err = translate.FromEnglish(ctx, s.Translator, tailoredEN, resumeLang)
		return err
	}); err != nil {
		return res, err
	}

	if !req.ExportPDF {
		return res, nil
	}
	if err := s.stage(StageRender, func() (err error) {
		res.PDF, err = s.Renderer.Render(ctx, res.TailoredResume)
		return err
	}); err != nil {
		return res, err
	}
	return res, nil
}

func (s *Service) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.ObserveStageMs(name, float64(time.Since(start).Microseconds())/1000.0)
	if err != nil {
		return &StageError{Stage: name, Err: err}
	}
	return nil
}
