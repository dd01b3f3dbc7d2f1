package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrshare/pkg/binder"
	"github.com/dmitrymomot/qrshare/pkg/qrcode"
)

type paramsRequest struct {
	Payload       string       `json:"payload"`
	Size          int          `json:"size"`
	Foreground    qrcode.Color `json:"foreground"`
	Level         string       `json:"level"`
	IncludeMargin bool         `json:"include_margin"`
}

func newJSONRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/params", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("binds body", func(t *testing.T) {
		t.Parallel()
		req := newJSONRequest(`{"payload":"https://example.com","size":300,"foreground":"#112233","level":"H","include_margin":true}`,
			"application/json; charset=utf-8")

		var got paramsRequest
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, "https://example.com", got.Payload)
		assert.Equal(t, 300, got.Size)
		assert.Equal(t, qrcode.Color{R: 0x11, G: 0x22, B: 0x33}, got.Foreground)
		assert.Equal(t, "H", got.Level)
		assert.True(t, got.IncludeMargin)
	})

	t.Run("content type mismatch is not applicable", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name        string
			contentType string
			wantErr     error
		}{
			{name: "form", contentType: "application/x-www-form-urlencoded", wantErr: binder.ErrUnsupportedMediaType},
			{name: "missing", contentType: "", wantErr: binder.ErrMissingContentType},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				var got paramsRequest
				err := binder.JSON()(newJSONRequest(`{}`, tt.contentType), &got)
				assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name string
			body string
		}{
			{name: "empty body", body: ""},
			{name: "syntax error", body: `{"payload":`},
			{name: "unknown field", body: `{"payload":"x","shape":"round"}`},
			{name: "trailing data", body: `{"payload":"x"}{"payload":"y"}`},
			{name: "bad color", body: `{"foreground":"#zzzzzz"}`},
			{name: "too large", body: `{"payload":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				var got paramsRequest
				err := binder.JSON()(newJSONRequest(tt.body, "application/json"), &got)
				assert.ErrorIs(t, err, binder.ErrInvalidJSON)
				assert.NotErrorIs(t, err, binder.ErrBinderNotApplicable)
			})
		}
	})

	t.Run("cancelled request", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := newJSONRequest(`{"payload":"x"}`, "application/json").WithContext(ctx)

		var got paramsRequest
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrInvalidJSON)
	})
}
