package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/auralabs/aura/config"
	"github.com/auralabs/aura/internal/cache"
	"github.com/auralabs/aura/internal/clients"
	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/logging"
	"github.com/auralabs/aura/internal/sentiment"
	"github.com/auralabs/aura/internal/server"
)

const cacheTTL = 10 * time.Minute

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	forum, err := clients.NewRedditClient(config.RedditCredentialsFromEnv())
	if err != nil {
		slog.Error("[Main] Failed to create Reddit client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	classifier, closeClassifier, err := sentiment.NewBackend(os.Getenv("AURA_BACKEND"))
	if err != nil {
		slog.Error("[Main] Failed to initialize classifier", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeClassifier()

	pipeline := insight.NewPipeline(forum, classifier, buildCache())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server.NewServer(pipeline).Routes(),
	}

	go func() {
		slog.Info("[Main] Dashboard server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	<-stopChan

	slog.Info("[Main] Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("[Main] Shutdown failed", slog.String("error", err.Error()))
	}
}

// buildCache picks Valkey when configured and falls back to the in-process
// cache, so a missing cache server never blocks startup.
func buildCache() insight.ResultCache {
	addr := os.Getenv("VALKEY_INIT_ADDRESS")
	if addr == "" {
		return cache.NewMemoryCache(cacheTTL)
	}

	valkeyCache, err := cache.NewValkeyCache(
		addr,
		os.Getenv("VALKEY_PASSWORD"),
		os.Getenv("VALKEY_TLS") == "true",
		cacheTTL,
	)
	if err != nil {
		slog.Warn("[Main] Valkey unavailable, using in-memory cache",
			slog.String("error", err.Error()))
		return cache.NewMemoryCache(cacheTTL)
	}
	return valkeyCache
}
