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

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	notionadapter "github.com/ericfisherdev/noteclip/internal/adapter/driven/notion"
	sqliteadapter "github.com/ericfisherdev/noteclip/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/noteclip/internal/adapter/driving/http"
	"github.com/ericfisherdev/noteclip/internal/application"
	"github.com/ericfisherdev/noteclip/internal/config"
	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on malformed env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"credential_storage", cfg.SecretKey != nil,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	cacheStore := sqliteadapter.NewCacheRepo(db)
	settingsStore := sqliteadapter.NewSettingsRepo(db)
	credentialStore := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)

	// 6. Resolve the Notion API key: stored credential takes priority over env.
	apiKey := cfg.NotionAPIKey
	if stored, err := credentialStore.Get(ctx, "notion_api_key"); err == nil && stored != "" {
		apiKey = stored
	}

	var client driven.NotionClient
	if apiKey != "" {
		client = notionadapter.NewClient(apiKey)
		slog.Info("notion client created", "fingerprint", model.Fingerprint(apiKey))
	} else {
		slog.Info("no notion api key configured, saves disabled until a key is provided via settings")
	}
	provider := application.NewClientProvider(client, model.Fingerprint(apiKey))

	// 7. Create application services.
	discovery := application.NewDiscoveryService(provider, cacheStore)
	saver := application.NewSaveService(provider, settingsStore)

	// 8. Create HTTP handler and register routes.
	handler := httphandler.NewHandler(
		discovery,
		saver,
		settingsStore,
		credentialStore,
		provider,
		func(token string) driven.NotionClient { return notionadapter.NewClient(token) },
		slog.Default(),
	)
	mux := httphandler.NewServeMux(handler, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("noteclip started", "listen_addr", cfg.ListenAddr)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout for the HTTP server drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
