package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultOpenAIModel   = "gpt-4"
	defaultGeminiModel   = "gemini-1.5-pro"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultMaxUpload     = 10 << 20
)

// Config holds application configuration. It is built once at startup and
// handed to the components that need it.
type Config struct {
	Env                  string
	Port                 string
	LogLevel             string
	LLMProvider          string
	LLMModel             string
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAITimeoutSeconds int
	GeminiAPIKey         string
	TranslateAPIKey      string
	ScratchDir           string
	MaxUploadBytes       int64
	PDFRenderer          string
	ChromePath           string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Variables
	// already present in the environment are left untouched.
	loadEnvFiles(".env", "cmd/.env")

	provider := normalizeProvider(getEnv("LLM_PROVIDER", "openai"))

	return Config{
		Env:                  normalizeEnv(getEnv("ENV", "dev")),
		Port:                 getEnv("PORT", "8000"),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LLMProvider:          provider,
		LLMModel:             getEnv("LLM_MODEL", defaultModel(provider)),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:        strings.TrimRight(getEnv("OPENAI_BASE_URL", defaultOpenAIBaseURL), "/"),
		OpenAITimeoutSeconds: getEnvInt("OPENAI_TIMEOUT_SECONDS", 120),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		TranslateAPIKey:      os.Getenv("TRANSLATE_API_KEY"),
		ScratchDir:           getEnv("SCRATCH_DIR", os.TempDir()),
		MaxUploadBytes:       int64(getEnvInt("MAX_UPLOAD_BYTES", defaultMaxUpload)),
		PDFRenderer:          normalizeRenderer(getEnv("PDF_RENDERER", "fpdf")),
		ChromePath:           os.Getenv("CHROME_PATH"),
	}
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func defaultModel(provider string) string {
	if provider == "gemini" {
		return defaultGeminiModel
	}
	return defaultOpenAIModel
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	default:
		return "openai"
	}
}

func normalizeRenderer(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "chromedp", "chrome":
		return "chromedp"
	default:
		return "fpdf"
	}
}
