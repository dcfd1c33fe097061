package llm

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

var (
	//go:embed prompts/tailor_v1.txt
	tailorPromptV1 string

	tailorTemplate = template.Must(template.New("tailor_v1").Parse(tailorPromptV1))
)

// BuildTailorPrompt fills the tailoring template with the resume and job description.
func BuildTailorPrompt(input TailorInput) (string, error) {
	var b strings.Builder
	data := struct {
		Resume         string
		JobDescription string
	}{input.ResumeText, input.JobDescription}
	if err := tailorTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render tailor prompt: %w", err)
	}
	return b.String(), nil
}
