package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	httpserver "github.com/dmitrymomot/qrshare/pkg/httpserver"
)

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("redis down") }

	tests := []struct {
		name   string
		funcs  []func(context.Context) error
		status int
		body   string
	}{
		{name: "liveness", status: http.StatusOK, body: "ALIVE"},
		{name: "ready", funcs: []func(context.Context) error{ok, ok}, status: http.StatusOK, body: "READY"},
		{name: "not ready", funcs: []func(context.Context) error{ok, fail}, status: http.StatusServiceUnavailable, body: "NOT_READY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, tt.funcs...)(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}

	t.Run("checks receive a deadline", func(t *testing.T) {
		t.Parallel()
		var hasDeadline bool
		check := func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		}
		httpserver.HealthCheckHandler(nil, check)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.True(t, hasDeadline)
	})
}
