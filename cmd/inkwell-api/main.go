// Package main boots the Inkwell AI reflection service and wires
// application dependencies.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/inkwell-labs/inkwell/internal/handler"
	"github.com/inkwell-labs/inkwell/internal/models"
	"github.com/inkwell-labs/inkwell/internal/responder"
	"github.com/inkwell-labs/inkwell/internal/sentiment"
	"github.com/inkwell-labs/inkwell/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	slog.Info("configuration loaded", "chat_model", cfg.ChatModel, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store *storage.Store
	if cfg.DatabaseURL != "" {
		s, err := storage.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer s.Close()
		store = s
	} else {
		slog.Warn("DATABASE_URL not set, running without persistence")
	}

	llm, err := models.NewOpenAIModel(cfg.ChatModel, cfg.OpenAIAPIKey)
	if err != nil {
		log.Fatalf("failed to create model client: %v", err)
	}

	replier := responder.New(llm, responder.Config{
		APIKey:       cfg.OpenAIAPIKey,
		ChatModel:    cfg.ChatModel,
		Timeout:      cfg.RequestTimeout,
		HistoryLimit: cfg.HistoryLimit,
		MaxTokens:    int32(cfg.MaxTokens),
		Temperature:  float32(cfg.Temperature),
	})
	classifier := sentiment.New(llm, sentiment.Config{
		APIKey:    cfg.OpenAIAPIKey,
		ChatModel: cfg.ChatModel,
		Timeout:   cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.New(replier, classifier, store),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.HTTPAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err.Error())
		}
	}
}
