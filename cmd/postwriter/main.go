package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	geminiadapter "github.com/ericfisherdev/postwriter/internal/adapter/driven/gemini"
	memoryadapter "github.com/ericfisherdev/postwriter/internal/adapter/driven/memory"
	sqliteadapter "github.com/ericfisherdev/postwriter/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/postwriter/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/postwriter/internal/adapter/driving/web"
	"github.com/ericfisherdev/postwriter/internal/application"
	"github.com/ericfisherdev/postwriter/internal/config"
	"github.com/ericfisherdev/postwriter/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on a missing API key).
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, config.Description())
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"model", cfg.Gemini.Model,
		"session_backend", cfg.Session.Backend,
		"session_idle_ttl", cfg.Session.IdleTTL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the session store.
	sessions, closeStore, err := openSessionStore(ctx, cfg.Session.Backend)
	if err != nil {
		return err
	}
	defer closeStore()

	// 4. Create the Gemini client.
	generator, err := geminiadapter.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
	if err != nil {
		return err
	}
	slog.Info("gemini client created", "model", generator.Model())

	// 5. Wire application services.
	verifier, err := application.NewAccessVerifier(cfg.Access.Secret, cfg.Access.Hash)
	if err != nil {
		return err
	}
	slog.Info("access verifier ready", "hashed", verifier.Hashed())
	postSvc := application.NewPostService(sessions, generator, verifier)

	janitor := application.NewSessionJanitor(sessions, cfg.Session.IdleTTL, cfg.Session.SweepInterval)
	go janitor.Start(ctx)

	// 6. Register API and web routes on one mux.
	mux := http.NewServeMux()
	apiHandler := httphandler.NewHandler(postSvc, webhandler.SessionCookieName, slog.Default())
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(postSvc, webhandler.CookieOptions{
		Secure: cfg.HTTP.CookieSecure,
		MaxAge: cfg.Session.IdleTTL,
	}, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Generous enough for one Gemini round trip.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("postwriter started", "listen_addr", cfg.HTTP.ListenAddr)

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 8. Graceful shutdown, letting in-flight generations finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// openSessionStore returns the configured SessionStore and a func releasing
// its resources.
func openSessionStore(ctx context.Context, backend string) (driven.SessionStore, func(), error) {
	switch backend {
	case config.BackendSQLite:
		db, err := sqliteadapter.NewDB(ctx, "postwriter-sessions")
		if err != nil {
			return nil, nil, err
		}

		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		slog.Info("session database ready", "backend", backend, "schema_version", version)

		return sqliteadapter.NewSessionRepo(db), func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}, nil
	case config.BackendMemory:
		slog.Info("session store ready", "backend", backend)
		return memoryadapter.NewSessionStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w %q", config.ErrInvalidBackend, backend)
	}
}
