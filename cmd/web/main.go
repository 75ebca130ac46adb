package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/config"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/contact"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/content"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/handlers"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/i18n"
	sitemw "github.com/Illia-Kh/Landing-Page-Design-sub001/internal/middleware"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/observability"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/render"
	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/seo"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const compressLevel = 5

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	ctx := context.Background()
	notifier, closeNotifier, err := newNotifier(ctx, cfg.Contact, logger)
	if err != nil {
		logger.Fatal("failed to initialise contact notifier", zap.Error(err))
	}
	defer closeNotifier()

	router, err := buildRouter(cfg, logger, notifier)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("site listening",
			zap.String("version", version),
			zap.Strings("locales", cfg.Site.Locales),
			zap.Bool("dev", cfg.Site.DevMode),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildRouter loads dictionaries, content and templates and wires every
// handler behind the shared middleware chain.
func buildRouter(cfg config.Config, logger *zap.Logger, notifier contact.Notifier) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	bundle, err := i18n.Load(cfg.Site.LocalesDir, cfg.Site.DefaultLocale, cfg.Site.Locales)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}
	cities, err := content.LoadCities(filepath.Join(cfg.Site.ContentDir, "cities.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	store := content.NewStore(cfg.Site.ContentDir, cfg.Site.DefaultLocale,
		content.WithTTL(cfg.Site.ContentTTL),
		content.WithLogger(logger.Named("content")),
	)
	renderer, err := render.New(cfg.Site.TemplatesDir, bundle, cfg.Site.DevMode)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	svc, err := contact.NewService(contact.ServiceDeps{
		Window: contact.TimingWindow{
			Min: cfg.Contact.MinElapsed,
			Max: cfg.Contact.MaxElapsed,
		},
		ProcessingDelay: cfg.Contact.ProcessingDelay,
		Notifier:        notifier,
		Limiter:         contact.NewLimiter(cfg.RateLimits.ContactPerMinute, time.Minute),
		Logger:          logger.Named("contact"),
	})
	if err != nil {
		return nil, err
	}
	contactHandlers := handlers.NewContactHandlers(svc, handlers.WithContactMaxBody(cfg.Contact.MaxBodyBytes))

	site, err := handlers.NewSiteHandlers(handlers.SiteDeps{
		Site: seo.Site{
			BaseURL:       cfg.Site.URL,
			Name:          cfg.Site.Name,
			DefaultLocale: cfg.Site.DefaultLocale,
			Locales:       cfg.Site.Locales,
		},
		Bundle:   bundle,
		Renderer: renderer,
		Pages:    store,
		Cities:   cities,
		Analytics: handlers.SiteAnalytics{
			GA4ID: cfg.Analytics.GA4MeasurementID,
			GTMID: cfg.Analytics.GTMContainerID,
			Debug: cfg.Analytics.Debug,
		},
		ContactEmail: cfg.Site.Email,
	})
	if err != nil {
		return nil, err
	}

	return handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger),
			observability.TraceMiddleware(cfg.ProjectID),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(logger),
			chimw.Compress(compressLevel),
			sitemw.Consent,
		),
		handlers.WithHealthHandlers(handlers.NewHealthHandlers(handlers.WithHealthVersion(version))),
		handlers.WithAssets(sitemw.AssetsWithCache(filepath.Join(cfg.Site.PublicDir, "assets"))),
		handlers.WithAPIRoutes(contactHandlers.Routes),
		handlers.WithSiteRoutes(site.Routes),
		handlers.WithNotFound(site.NotFound),
	), nil
}

// newNotifier publishes accepted submissions to Pub/Sub when a topic is
// configured and does nothing otherwise.
func newNotifier(ctx context.Context, cfg config.ContactConfig, logger *zap.Logger) (contact.Notifier, func(), error) {
	if cfg.PubSubProjectID == "" || cfg.PubSubTopic == "" {
		logger.Info("contact notifications disabled")
		return contact.NoopNotifier{}, func() {}, nil
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSubProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("pubsub client: %w", err)
	}
	topic := client.Topic(cfg.PubSubTopic)
	notifier, err := contact.NewPubSubNotifier(topic)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	logger.Info("contact notifications enabled",
		zap.String("project", cfg.PubSubProjectID),
		zap.String("topic", cfg.PubSubTopic),
	)
	return notifier, func() {
		topic.Stop()
		if err := client.Close(); err != nil {
			logger.Warn("pubsub close error", zap.Error(err))
		}
	}, nil
}
