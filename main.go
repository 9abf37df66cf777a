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

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/profile-card/internal/avatar"
	"github.com/Zachkp/profile-card/internal/config"
	"github.com/Zachkp/profile-card/internal/locale"
	"github.com/Zachkp/profile-card/internal/logging"
	"github.com/Zachkp/profile-card/internal/profile"
	"github.com/Zachkp/profile-card/internal/visits"
	"github.com/Zachkp/profile-card/internal/web"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.RouterMode())

	content, err := profile.LoadContent(cfg.ContentFile, defaultContent())
	if err != nil {
		return err
	}
	if err := content.Validate(); err != nil {
		return err
	}

	loc, err := locale.NewManager(logger, profile.Supported()...)
	if err != nil {
		return err
	}

	opts := web.Options{
		Content:   content,
		Avatars:   avatar.NewResolver(cfg.ImagesDir, logger),
		Locale:    loc,
		Logger:    logger,
		StaticDir: cfg.StaticDir,
		ImagesDir: cfg.ImagesDir,
	}

	if cfg.VisitsEnabled() {
		store, err := visits.Open(ctx, cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		tracker := web.NewTracker(store, logger)
		defer tracker.Wait()

		opts.Visits = store
		opts.Tracker = tracker
		logger.Info("visitor tracking enabled with hashed IP addresses", "database", cfg.DatabasePath)

		go cleanupVisits(ctx, store, logger)
	}

	if cfg.AdminEnabled() {
		opts.Admin = &web.AdminOptions{
			Username:     cfg.AdminUsername,
			Password:     cfg.AdminPassword,
			SecureCookie: cfg.IsProduction(),
		}
		logger.Info("admin access available at /admin/login")
	}

	router, err := web.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.AppEnv)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// cleanupVisits drops visits past retention at startup and once a day.
func cleanupVisits(ctx context.Context, store *visits.Store, logger *slog.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		removed, err := store.Cleanup(ctx, visits.Retention)
		if err != nil && ctx.Err() == nil {
			logger.Error("error cleaning up old visitor data", "error", err)
		}
		if removed > 0 {
			logger.Info("privacy cleanup", "removed", removed)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
