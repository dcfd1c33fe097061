package bootstrap

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/langdetect"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/llm/gemini"
	openai "resume-tailor/internal/llm/openai"
	"resume-tailor/internal/render"
	"resume-tailor/internal/services/health"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/shared/server"
	"resume-tailor/internal/shared/storage/scratch"
	"resume-tailor/internal/shared/telemetry"
	"resume-tailor/internal/tailoring"
	"resume-tailor/internal/translate"
	"resume-tailor/internal/uploads"
)

// App holds shared dependencies, built once from Config.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Scratch       *scratch.Store
	Detector      langdetect.Detector
	Translator    translate.Translator
	LLM           llm.Client
	Renderer      render.Renderer
	TailorService *tailoring.Service
	UploadHandler *uploads.Handler
	TailorHandler *tailoring.Handler

	closers []io.Closer
}

// Build prepares every component and the router. Missing credentials never
// fail Build; the affected component reports the problem per request.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.SetLevel(cfg.LogLevel)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config:   cfg,
		Scratch:  scratch.New(cfg.ScratchDir),
		Detector: langdetect.New(),
	}
	app.Translator = app.buildTranslator(ctx)
	app.LLM = app.buildLLM(ctx)
	app.Renderer = buildRenderer(cfg, app.Scratch)

	app.TailorService = &tailoring.Service{
		Detector:   app.Detector,
		Translator: app.Translator,
		LLM:        app.LLM,
		Renderer:   app.Renderer,
	}
	app.UploadHandler = uploads.NewHandler(app.Scratch, app.Detector, cfg.MaxUploadBytes)
	app.TailorHandler = tailoring.NewHandler(app.TailorService)
	app.Router = server.NewRouter(server.RouterDeps{
		Health:        health.NewService(),
		UploadHandler: app.UploadHandler,
		TailorHandler: app.TailorHandler,
	})

	if app.Router == nil {
		return nil, errors.New("failed to initialize router")
	}
	return app, nil
}

// Close releases remote clients.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) buildTranslator(ctx context.Context) translate.Translator {
	g, err := translate.NewGoogle(ctx, a.Config.TranslateAPIKey)
	if err != nil {
		telemetry.Warn("bootstrap.translate.unavailable", map[string]any{"err": err.Error()})
		return translate.Unavailable{Err: err}
	}
	a.closers = append(a.closers, g)
	return g
}

func (a *App) buildLLM(ctx context.Context) llm.Client {
	cfg := a.Config
	switch cfg.LLMProvider {
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			telemetry.Warn("bootstrap.llm.unavailable", map[string]any{"provider": "gemini", "err": err.Error()})
			return llm.PlaceholderClient{Provider: "gemini"}
		}
		a.closers = append(a.closers, client)
		return client
	default:
		client, err := openai.NewClient(openai.Options{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: time.Duration(cfg.OpenAITimeoutSeconds) * time.Second,
		})
		if err != nil {
			telemetry.Warn("bootstrap.llm.unavailable", map[string]any{"provider": "openai", "err": err.Error()})
			return llm.PlaceholderClient{Provider: "openai"}
		}
		return client
	}
}

func buildRenderer(cfg config.Config, store *scratch.Store) render.Renderer {
	if cfg.PDFRenderer == "chromedp" {
		return render.NewChromedp(cfg.ChromePath)
	}
	return render.NewFPDF(store)
}
