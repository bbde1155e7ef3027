// Command server runs the voice agent HTTP API.
//
// Usage:
//
//	ASSEMBLYAI_API_KEY=... GEMINI_API_KEY=... MURF_API_KEY=... server
//
// Configuration comes from the environment, optionally seeded from a
// .env file in the working directory; see the config package for the
// full list of variables. Providers with missing keys start anyway and
// report themselves unavailable, so the server always comes up.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/eathindhar/murf-voice-agents/agent"
	"github.com/eathindhar/murf-voice-agents/api"
	"github.com/eathindhar/murf-voice-agents/assemblyai"
	"github.com/eathindhar/murf-voice-agents/config"
	"github.com/eathindhar/murf-voice-agents/gemini"
	"github.com/eathindhar/murf-voice-agents/memory"
	"github.com/eathindhar/murf-voice-agents/murf"
	"github.com/eathindhar/murf-voice-agents/polly"
	"github.com/eathindhar/murf-voice-agents/stage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := memory.NewSessionStore()
	clips := memory.NewClipStore()

	transcriber := assemblyai.New(cfg.AssemblyAIKey)
	responder, err := gemini.New(ctx, cfg.GeminiKey, gemini.WithModel(cfg.GeminiModel))
	if err != nil {
		return err
	}
	synthesizer := murf.New(cfg.MurfKey, murf.WithVoice(cfg.MurfVoice))

	opts := []agent.Option{
		agent.WithLogger(logger),
		agent.WithStageOptions(
			stage.WithMaxRetries(cfg.MaxRetries),
			stage.WithTimeout(cfg.StageTimeout),
			stage.WithLogger(logger),
		),
	}
	statuses := []api.ProviderStatus{
		{Role: api.RoleSTT, Name: transcriber.Name(), Configured: transcriber.Available()},
		{Role: api.RoleLLM, Name: responder.Name(), Configured: responder.Available()},
		{Role: api.RoleTTS, Name: synthesizer.Name(), Configured: synthesizer.Available()},
	}
	if cfg.PollyFallback {
		backup, err := polly.New(ctx, cfg.AWSRegion, clips, cfg.PublicBaseURL, polly.WithVoice(cfg.PollyVoice))
		if err != nil {
			return fmt.Errorf("configure backup synthesizer: %w", err)
		}
		opts = append(opts, agent.WithBackupSynthesizer(backup))
		statuses = append(statuses, api.ProviderStatus{
			Role: api.RoleBackupTTS, Name: backup.Name(), Configured: backup.Available(),
		})
	}
	for _, s := range statuses {
		if !s.Configured {
			logger.Warn("provider not configured", "role", s.Role, "provider", s.Name)
		}
	}

	pipeline := agent.New(transcriber, responder, synthesizer, sessions, opts...)
	handler := api.NewHandler(pipeline, sessions, clips, statuses)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
