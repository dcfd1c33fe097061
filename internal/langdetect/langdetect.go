package langdetect

import (
	"errors"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// ErrNoFeatures is returned when the text carries nothing a detector can use,
// such as empty input or input without letters.
var ErrNoFeatures = errors.New("no features in text")

// Detector returns the ISO 639-1 code of the dominant language of a text.
type Detector interface {
	Detect(text string) (string, error)
}

var (
	linguaOnce     sync.Once
	linguaDetector lingua.LanguageDetector
)

// shared builds the all-languages detector once; models load lazily and the
// detector is safe for concurrent use.
func shared() lingua.LanguageDetector {
	linguaOnce.Do(func() {
		linguaDetector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})
	return linguaDetector
}

// Lingua is a Detector backed by github.com/pemistahl/lingua-go.
type Lingua struct {
	detector lingua.LanguageDetector
}

// New returns the default detector.
func New() Lingua {
	return Lingua{detector: shared()}
}

// Detect returns a lowercase ISO 639-1 code.
func (l Lingua) Detect(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoFeatures
	}
	detector := l.detector
	if detector == nil {
		detector = shared()
	}
	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return "", ErrNoFeatures
	}
	return strings.ToLower(lang.IsoCode639_1().String()), nil
}

// Func adapts a plain function to Detector.
type Func func(text string) (string, error)

// Detect calls f.
func (f Func) Detect(text string) (string, error) {
	return f(text)
}
