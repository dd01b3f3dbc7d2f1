// Package httpserver runs the qrshare HTTP listener with graceful shutdown and
// serves liveness and readiness probes.
//
//	srv := httpserver.New(cfg.Server,
//		httpserver.WithLogger(log),
//		httpserver.WithOnShutdown(closeStreams),
//	)
//	r.Get("/live", httpserver.HealthCheckHandler(log))
//	r.Get("/ready", httpserver.HealthCheckHandler(log, redis.Healthcheck(client)))
//	err := srv.Run(ctx, r)
//
// Run returns nil after ctx is cancelled and in-flight requests finished, or
// an error wrapping ErrStart when the listener cannot be opened.
package httpserver
