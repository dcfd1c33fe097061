package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
)

type recordingTranslator struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, source+"->"+target)
	return "[" + target + "] " + text, nil
}

func TestToEnglishSkipsEnglish(t *testing.T) {
	rec := &recordingTranslator{}
	got, err := ToEnglish(context.Background(), rec, "hello", "en")
	if err != nil || got != "hello" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
	got, err = FromEnglish(context.Background(), rec, "hello", "en")
	if err != nil || got != "hello" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no translation calls, got %v", rec.calls)
	}
}

func TestToEnglishAndBack(t *testing.T) {
	rec := &recordingTranslator{}
	got, err := ToEnglish(context.Background(), rec, "bonjour", "fr")
	if err != nil || got != "[en] bonjour" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
	got, err = FromEnglish(context.Background(), rec, "hello", "fr")
	if err != nil || got != "[fr] hello" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
	if strings.Join(rec.calls, ",") != "fr->en,en->fr" {
		t.Fatalf("unexpected calls %v", rec.calls)
	}
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{Err: errors.New("no credentials")}.Translate(context.Background(), "x", "fr", "en")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "no credentials") || !strings.Contains(err.Error(), "fr->en") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestGoogleTranslate(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"Senior engineer"}]}}`))
	}))
	defer server.Close()

	g, err := NewGoogle(context.Background(), "test-key",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewGoogle: %v", err)
	}
	defer g.Close()

	got, err := g.Translate(context.Background(), "Ingénieur senior", "fr", "en")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Senior engineer" {
		t.Fatalf("unexpected translation %q", got)
	}
	if hits != 1 {
		t.Fatalf("expected one backend call, got %d", hits)
	}
}

func TestGoogleTranslateRejectsBadLanguage(t *testing.T) {
	g := &Google{}
	if _, err := g.Translate(context.Background(), "x", "not a language!", "en"); err == nil {
		t.Fatal("expected parse error for invalid source language")
	}
}
