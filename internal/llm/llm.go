package llm

import (
	"context"
	"errors"
	"strings"
)

// SystemInstruction is sent with every tailoring request.
const SystemInstruction = "You are a helpful resume tailoring assistant. Please respond in English."

// DefaultTemperature is the sampling temperature used for tailoring.
const DefaultTemperature float32 = 0.7

var (
	// ErrTimeout means the provider did not answer within the client timeout.
	ErrTimeout = errors.New("llm request timeout")
	// ErrRejected means the provider answered with an error status or error body.
	ErrRejected = errors.New("llm request rejected")
	// ErrMalformedResponse means the answer could not be used (unparsable, no choices, empty).
	ErrMalformedResponse = errors.New("llm response malformed")
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("llm provider not configured")
)

// Request is a single chat completion.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
}

// Client abstracts text-generation providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// TailorInput captures the English texts to tailor.
type TailorInput struct {
	ResumeText     string
	JobDescription string
}

// Tailor builds the tailoring prompt and returns the provider's first completion.
func Tailor(ctx context.Context, client Client, input TailorInput) (string, error) {
	prompt, err := BuildTailorPrompt(input)
	if err != nil {
		return "", err
	}
	return client.Complete(ctx, Request{
		System:      SystemInstruction,
		Prompt:      prompt,
		Temperature: DefaultTemperature,
	})
}

// PlaceholderClient is installed when no provider credential is configured.
type PlaceholderClient struct {
	Provider string
}

// Complete returns ErrNotConfigured.
func (p PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	if strings.TrimSpace(p.Provider) == "" {
		return "", ErrNotConfigured
	}
	return "", errors.Join(ErrNotConfigured, errors.New("missing credential for "+p.Provider))
}
