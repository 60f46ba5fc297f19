package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/config"
	"finitefield.org/hanko-docs/internal/guides"
	"finitefield.org/hanko-docs/internal/handlers"
	"finitefield.org/hanko-docs/internal/markup"
	mw "finitefield.org/hanko-docs/internal/middleware"
	"finitefield.org/hanko-docs/internal/observability"
	"finitefield.org/hanko-docs/internal/webpage"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	flag.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
	flag.StringVar(&cfg.Site.TemplatesDir, "templates", cfg.Site.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.Site.PublicDir, "public", cfg.Site.PublicDir, "public assets directory")
	flag.StringVar(&cfg.Content.Dir, "content", cfg.Content.Dir, "content directory")
	flag.StringVar(&cfg.Content.IndexFile, "index", cfg.Content.IndexFile, "guide index manifest")
	flag.Parse()

	baseLogger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("docs")

	router, err := newRouter(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr), zap.Bool("dev", cfg.Site.Dev))
	go func() {
		serverLogger.Info("docs listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newRouter loads the guide index and templates and mounts every route.
func newRouter(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	index, err := guides.LoadManifest(cfg.Content.IndexFile, cfg.Content.Dir)
	if err != nil {
		return nil, err
	}
	layout, err := webpage.NewLayout(cfg.Site.TemplatesDir, cfg.Site.Dev)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	site := handlers.NewSite(index, markup.NewRenderer(), layout,
		handlers.WithSiteURL(cfg.Site.URL),
		handlers.WithLang(cfg.Site.Lang),
		handlers.WithAnalytics(handlers.Analytics{
			GA4MeasurementID: cfg.Site.GAMeasurementID,
			Debug:            cfg.Site.Dev,
		}),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.Recover(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", handlers.Health)
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(cfg.Site.PublicDir, "assets"))))
	site.Routes(r)
	return r, nil
}
