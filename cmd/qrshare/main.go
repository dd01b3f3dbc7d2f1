package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/qrshare/modules/studio"
	"github.com/dmitrymomot/qrshare/pkg/config"
	"github.com/dmitrymomot/qrshare/pkg/environment"
	"github.com/dmitrymomot/qrshare/pkg/export"
	"github.com/dmitrymomot/qrshare/pkg/httpserver"
	"github.com/dmitrymomot/qrshare/pkg/logger"
	"github.com/dmitrymomot/qrshare/pkg/notifications"
	"github.com/dmitrymomot/qrshare/pkg/ratelimiter"
	"github.com/dmitrymomot/qrshare/pkg/redis"
	"github.com/dmitrymomot/qrshare/pkg/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is optional
	_ = config.LoadEnv()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := logger.New(
		logger.WithEnvironment(string(cfg.AppEnv), cfg.AppName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			studio.SessionExtractor(),
		),
	)
	logger.SetAsDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Application failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
	log.Info("Application stopped")
}

// run wires the dependencies and serves until ctx is done.
func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	// Storage backs share links and the optional download archive
	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	sender, err := newEmailSender(cfg, log)
	if err != nil {
		return fmt.Errorf("init email sender: %w", err)
	}

	// Notices live in redis when configured, in memory otherwise
	var (
		noticeStore notifications.Storage = notifications.NewMemoryStorage()
		shareStore  ratelimiter.Store
		readyChecks []func(context.Context) error

		deliveryOpts = []notifications.BroadcastDelivererOption{
			notifications.WithBroadcastLogger(log.With(logger.Component("notifications.delivery"))),
			notifications.WithMaxBroadcasters(cfg.Studio.MaxSessions),
		}
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer client.Close()

		noticeStore = notifications.NewRedisStorage(client, notifications.WithRedisTTL(cfg.NotificationTTL))
		shareStore = ratelimiter.NewRedisStore(client, cfg.ShareLimitKeys)
		readyChecks = append(readyChecks, redis.Healthcheck(client))
		// live toasts reach sessions streaming from any instance
		deliveryOpts = append(deliveryOpts, notifications.WithBroadcasterFactory(
			notifications.RedisBroadcasterFactory(client, cfg.NotificationChannel, log.With(logger.Component("broadcast"))),
		))
	}

	deliverer := notifications.NewBroadcastDeliverer(cfg.NotificationBuffer, deliveryOpts...)
	defer deliverer.Close()

	notices := notifications.NewManager(noticeStore, deliverer,
		notifications.WithManagerLogger(log.With(logger.Component("notifications"))),
		notifications.WithTTL(cfg.NotificationTTL),
	)

	pipeline := export.NewPipeline(
		export.WithSharer(export.TargetLink, export.NewLinkSharer(storage, cfg.ShareLinkDir)),
		export.WithSharer(export.TargetEmail, export.NewEmailSharer(sender, cfg.ShareSubject)),
		export.WithDefaultTarget(export.TargetLink),
		export.WithLogger(log.With(logger.Component("export"))),
	)

	cookies, err := newCookieManager(cfg, log)
	if err != nil {
		return fmt.Errorf("create cookie manager: %w", err)
	}

	studioOpts := []studio.ServiceOption{studio.WithLogger(log.With(logger.Component("studio")))}
	if cfg.ExportArchive {
		studioOpts = append(studioOpts, studio.WithArchive(export.NewStorageSaver(storage, cfg.ExportArchiveDir)))
	}
	if cfg.ShareLimit.Enabled() {
		if shareStore == nil {
			mem := ratelimiter.NewMemoryStore()
			defer mem.Close()
			shareStore = mem
		}
		limiter, err := ratelimiter.NewBucket(shareStore, cfg.ShareLimit)
		if err != nil {
			return fmt.Errorf("create share limiter: %w", err)
		}
		studioOpts = append(studioOpts, studio.WithShareLimiter(limiter))
	}
	svc := studio.NewService(cfg.Studio, pipeline, notices, cookies, studioOpts...)
	defer svc.Close()

	r := chi.NewRouter()
	r.Use(requestid.Middleware, environment.Middleware(cfg.AppEnv))

	// Health check endpoints
	r.Get("/live", httpserver.HealthCheckHandler(log))
	r.Get("/ready", httpserver.HealthCheckHandler(log, readyChecks...))

	// Shared links point here when the local driver is used
	if strings.EqualFold(cfg.StorageDriver, driverLocal) && isLocalPath(cfg.StorageBaseURL) {
		r.Handle(cfg.StorageBaseURL+"/*", http.StripPrefix(cfg.StorageBaseURL, http.FileServer(http.Dir(cfg.StorageDir))))
	}

	r.Mount("/", svc.Handle())

	eg, ctx := errgroup.WithContext(ctx)

	s := httpserver.New(cfg.Server,
		httpserver.WithLogger(log.With(logger.Component("server"))),
		httpserver.WithOnShutdown(func() { _ = deliverer.Close() }),
	)
	eg.Go(func() error { return s.Run(ctx, r) })

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}
