package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type captureClient struct {
	last Request
	out  string
}

func (c *captureClient) Complete(ctx context.Context, req Request) (string, error) {
	c.last = req
	return c.out, nil
}

func TestBuildTailorPrompt(t *testing.T) {
	got, err := BuildTailorPrompt(TailorInput{ResumeText: "R {{ not a template }}", JobDescription: "J"})
	if err != nil {
		t.Fatalf("BuildTailorPrompt: %v", err)
	}
	want := "You are a professional career assistant. Given the resume and the job description below, " +
		"tailor the resume to better match the job requirements. Focus on the summary, experience, and skills sections.\n\n" +
		"Resume:\nR {{ not a template }}\n\nJob Description:\nJ\n\nProvide the updated resume in English:"
	if got != want {
		t.Fatalf("unexpected prompt:\n%q\nwant:\n%q", got, want)
	}
}

func TestTailorSendsSystemAndTemperature(t *testing.T) {
	client := &captureClient{out: "tailored"}
	got, err := Tailor(context.Background(), client, TailorInput{ResumeText: "resume", JobDescription: "jd"})
	if err != nil {
		t.Fatalf("Tailor: %v", err)
	}
	if got != "tailored" {
		t.Fatalf("unexpected output %q", got)
	}
	if client.last.System != SystemInstruction {
		t.Fatalf("unexpected system %q", client.last.System)
	}
	if client.last.Temperature != 0.7 {
		t.Fatalf("unexpected temperature %v", client.last.Temperature)
	}
	if !strings.Contains(client.last.Prompt, "Resume:\nresume\n\nJob Description:\njd") {
		t.Fatalf("prompt missing inputs: %q", client.last.Prompt)
	}
}

func TestPlaceholderClient(t *testing.T) {
	_, err := PlaceholderClient{Provider: "openai"}.Complete(context.Background(), Request{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if !strings.Contains(err.Error(), "openai") {
		t.Fatalf("expected provider in error, got %q", err.Error())
	}
}
