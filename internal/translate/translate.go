package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gtranslate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// English is the pivot language of the tailoring pipeline.
const English = "en"

// ErrUnavailable is returned when no translation backend could be built.
var ErrUnavailable = errors.New("translation service unavailable")

// Translator converts text between two ISO 639-1 languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Google translates through the Google Cloud Translation API (v2).
type Google struct {
	client *gtranslate.Client
}

// NewGoogle builds a Cloud Translation client. An empty apiKey falls back to
// application default credentials. Extra options are appended after the key.
func NewGoogle(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Google, error) {
	var all []option.ClientOption
	if strings.TrimSpace(apiKey) != "" {
		all = append(all, option.WithAPIKey(apiKey))
	}
	all = append(all, opts...)
	client, err := gtranslate.NewClient(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("create translate client: %w", err)
	}
	return &Google{client: client}, nil
}

// Translate sends text as plain text (no HTML handling) from source to target.
func (g *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	src, err := language.Parse(source)
	if err != nil {
		return "", fmt.Errorf("translate %s->%s: invalid source language: %w", source, target, err)
	}
	dst, err := language.Parse(target)
	if err != nil {
		return "", fmt.Errorf("translate %s->%s: invalid target language: %w", source, target, err)
	}

	out, err := g.client.Translate(ctx, []string{text}, dst, &gtranslate.Options{
		Source: src,
		Format: gtranslate.Text,
	})
	if err != nil {
		return "", fmt.Errorf("translate %s->%s: %w", source, target, err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("translate %s->%s: empty response", source, target)
	}
	return out[0].Text, nil
}

// Close releases the underlying client.
func (g *Google) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Unavailable reports the construction error on every call, so a missing
// backend only fails requests that actually need translation.
type Unavailable struct {
	Err error
}

// Translate always fails with ErrUnavailable.
func (u Unavailable) Translate(ctx context.Context, text, source, target string) (string, error) {
	if u.Err != nil {
		return "", fmt.Errorf("translate %s->%s: %w: %v", source, target, ErrUnavailable, u.Err)
	}
	return "", fmt.Errorf("translate %s->%s: %w", source, target, ErrUnavailable)
}

// ToEnglish normalizes text written in lang to English. English input is
// returned unchanged without calling t.
func ToEnglish(ctx context.Context, t Translator, text, lang string) (string, error) {
	if lang == English {
		return text, nil
	}
	return t.Translate(ctx, text, lang, English)
}

// FromEnglish converts English text to lang, skipping the call when lang is English.
func FromEnglish(ctx context.Context, t Translator, text, lang string) (string, error) {
	if lang == English {
		return text, nil
	}
	return t.Translate(ctx, text, English, lang)
}
