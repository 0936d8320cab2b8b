package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NoCoDeer/astrologer-bot/internal/adapters/decks"
	"github.com/NoCoDeer/astrologer-bot/internal/adapters/ephemeris/kepler"
	httpadapter "github.com/NoCoDeer/astrologer-bot/internal/adapters/http"
	"github.com/NoCoDeer/astrologer-bot/internal/adapters/llm/openrouter"
	"github.com/NoCoDeer/astrologer-bot/internal/adapters/meanings"
	"github.com/NoCoDeer/astrologer-bot/internal/app"
	"github.com/NoCoDeer/astrologer-bot/internal/config"
	"github.com/NoCoDeer/astrologer-bot/internal/ports"
)

// stdRNG delegates to math/rand (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int   { return rand.Intn(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	var interpreter ports.Interpreter
	if cfg.AIEnabled {
		interpreter = openrouter.NewClient(
			&http.Client{Timeout: cfg.LLMTimeout},
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.AIModel,
			cfg.AIFallbackModels,
			logger,
		)
	}

	astrology := app.NewAstrologyService(kepler.New(), interpreter, cfg.HouseSystem, logger)
	numerology := app.NewNumerologyService(meanings.NewEmbeddedStore(), interpreter)
	tarot := app.NewTarotService(decks.NewEmbeddedStore(), interpreter, stdRNG{}, cfg.TarotDeck)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = httpadapter.JSONSerializer{}

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(astrology, numerology, tarot)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
