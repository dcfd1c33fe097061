package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"resume-tailor/internal/llm"
	"resume-tailor/internal/shared/telemetry"
)

// Client implements llm.Client for Google Gemini.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. Extra options are appended after the key.
func NewClient(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is required", llm.ErrNotConfigured)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}

	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Complete generates text with the request's system instruction and temperature.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(req.Temperature)
	if strings.TrimSpace(req.System) != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", classify(err)
	}
	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	telemetry.Info("llm.response", map[string]any{
		"provider":    "gemini",
		"model":       c.model,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return text, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gemini request timeout: %w: %w", llm.ErrTimeout, err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini http status %d: %w: %s", apiErr.Code, llm.ErrRejected, apiErr.Message)
	}
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("gemini response blocked: %w: %v", llm.ErrRejected, err)
	}
	return fmt.Errorf("failed to generate content: %w", err)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini response missing candidates: %w", llm.ErrMalformedResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response missing content: %w", llm.ErrMalformedResponse)
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	content := strings.Join(parts, "")
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("gemini response empty content: %w", llm.ErrMalformedResponse)
	}
	return content, nil
}

var _ llm.Client = (*Client)(nil)
