package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/agentur-schein/props-backend/db"
	"github.com/agentur-schein/props-backend/internal/config"
	"github.com/agentur-schein/props-backend/internal/discount"
	"github.com/agentur-schein/props-backend/internal/events"
	"github.com/agentur-schein/props-backend/internal/health"
	"github.com/agentur-schein/props-backend/internal/invoice"
	"github.com/agentur-schein/props-backend/internal/lock"
	"github.com/agentur-schein/props-backend/internal/notify"
	"github.com/agentur-schein/props-backend/internal/obs"
	"github.com/agentur-schein/props-backend/internal/order"
	"github.com/agentur-schein/props-backend/internal/props"
	"github.com/agentur-schein/props-backend/internal/ratelimit"
	"github.com/agentur-schein/props-backend/internal/security"
)

func main() {
	cfg := config.MustLoad()

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "props")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", false)
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "props-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			SamplingRatio: envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0),
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "props-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if tracingEnabled {
		if err := redisotel.InstrumentTracing(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis tracing")
		}
	}
	if metricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisOpts.Addr, Password: redisOpts.Password, DB: redisOpts.DB})
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	propsStore := props.NewPGStore(pool)
	propsSvc := &props.Service{
		Store:  propsStore,
		Cache:  props.NewCache(redisClient, cfg.CatalogCacheTTL),
		Logger: logger,
	}
	if cfg.SeedOnEmpty {
		seeded, err := props.SeedIfEmpty(ctx, propsStore)
		if err != nil {
			logger.Fatal().Err(err).Msg("seed catalog")
		}
		if seeded {
			logger.Info().Msg("seeded sample catalog")
		}
	}

	discountSvc := discount.NewService(discount.NewPGStore(pool))
	notifySettings := notify.NewPGSettingsStore(pool)
	printStore := notify.NewPGPrintStore(pool)

	bus := &events.Bus{
		Store: events.PGStore{Pool: pool},
		Notifiers: []events.Notifier{
			notify.EmailNotifier{
				Mail: dynamicSender{store: notifySettings},
				Recipient: func(ctx context.Context) string {
					settings, err := notifySettings.Get(ctx)
					if err != nil {
						return ""
					}
					return settings.NotificationEmail
				},
			},
		},
	}

	orderSvc := &order.Service{
		Store:     order.NewPGStore(pool),
		Discounts: discount.NewPGStore(pool),
		Events:    bus,
		Email:     &notify.Enqueuer{Client: taskClient, Queue: cfg.EmailQueueName, Retries: cfg.EmailTaskRetries},
		Prints:    printStore,
		Logger:    logger,
	}

	propsHandler := &props.Handler{Svc: propsSvc}
	propsAdmin := &props.AdminHandler{Svc: propsSvc}
	transferHandler := &props.TransferHandler{
		Svc:    propsSvc,
		Events: bus,
		Lock:   &lock.Mutex{Client: redisClient},
	}
	discountHandler := &discount.Handler{Svc: discountSvc}
	invoiceHandler := &invoice.Handler{Events: bus, Logger: logger}
	orderHandler := &order.Handler{Svc: orderSvc}
	orderAdmin := &order.AdminHandler{Svc: orderSvc}
	settingsHandler := notify.NewSettingsHandler(notifySettings)
	printHandler := &notify.PrintHandler{Store: printStore}

	adminLimiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "ratelimit:"},
		Config:  ratelimit.AdminConfig(cfg.AdminRateWindow, cfg.AdminRateLimit),
		OnError: func(err error) { logger.Warn().Err(err).Msg("rate limiter unavailable") },
	}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{Enable: true, EnableHSTS: envBool("SECURE_ENABLE_HSTS", false)}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.MaxBodyBytes}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Filename", "Content-Disposition", "X-Total-Count"},
		MaxAge:         300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{Checker: health.Probes{Pool: pool, Redis: redisClient}}
	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)

	r.Route("/api", func(api chi.Router) {
		api.Get("/props", propsHandler.List)
		api.Post("/props", propsHandler.Create)
		api.Get("/props/{propID}", propsHandler.Get)
		api.Get("/discount-settings", discountHandler.Get)
		api.Post("/generate-invoice", invoiceHandler.Generate)
		api.Post("/orders", orderHandler.Create)
		api.Get("/settings", settingsHandler.Get)
		api.Put("/settings", settingsHandler.Update)
		api.Get("/print-notifications", printHandler.List)
		api.Get("/print-notifications/{notificationID}/pdf", printHandler.JobSheet)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(adminLimiter.Middleware)
			admin.Post("/props", propsAdmin.Create)
			admin.Put("/props/{propID}", propsAdmin.Update)
			admin.Delete("/props/{propID}", propsAdmin.Delete)
			admin.Get("/export", transferHandler.Export)
			admin.Post("/import", transferHandler.Import)
			admin.Get("/discount-settings", discountHandler.Get)
			admin.Put("/discount-settings", discountHandler.Update)
			admin.Get("/orders", orderAdmin.List)
		})
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	health.SetReady(false)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// dynamicSender builds an SMTP sender per message from the stored settings,
// so admin edits apply without a restart.
type dynamicSender struct {
	store notify.SettingsStore
}

func (d dynamicSender) Send(to, subject, body string) error {
	settings, err := d.store.Get(context.Background())
	if err != nil {
		return err
	}
	if !settings.Configured() {
		return nil
	}
	return notify.SMTPSender{Settings: settings}.Send(to, subject, body)
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}
