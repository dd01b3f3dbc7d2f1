package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/qrshare/pkg/logger"
)

const healthCheckTimeout = 5 * time.Second

// HealthCheckHandler answers liveness probes with "ALIVE" when no checks are
// given. With checks it is a readiness probe: all checks run concurrently and
// any failure turns the answer into 503 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		if len(checks) == 0 {
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		eg, egCtx := errgroup.WithContext(ctx)
		for _, check := range checks {
			eg.Go(func() error { return check(egCtx) })
		}
		if err := eg.Wait(); err != nil {
			log.WarnContext(ctx, "Readiness check failed", logger.Component("healthcheck"), logger.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
		_, _ = w.Write([]byte("READY"))
	}
}
