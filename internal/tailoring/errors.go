package tailoring

import "errors"

// Pipeline stages, in execution order.
const (
	StageDetectResume    = "detect_resume"
	StageDetectJob       = "detect_job"
	StageTranslateResume = "translate_resume"
	StageTranslateJob    = "translate_job"
	StageGenerate        = "generate"
	StageTranslateBack   = "translate_back"
	StageRender          = "render"
)

// ErrMissingField is returned for requests without resume_text or job_description.
var ErrMissingField = errors.New("missing required field")

// StageError names the pipeline stage that failed. Its message is the
// underlying error's message so response bodies stay unchanged.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// StageName returns the failed stage.
func (e *StageError) StageName() string { return e.Stage }
