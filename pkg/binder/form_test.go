package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrshare/pkg/binder"
	"github.com/dmitrymomot/qrshare/pkg/qrcode"
)

type shareForm struct {
	Target     string        `form:"target"`
	Recipients []string      `form:"recipient"`
	Size       int           `form:"size"`
	Margin     bool          `form:"margin"`
	Background *qrcode.Color `form:"background"`
	Note       string        `form:"-"`
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		values := url.Values{
			"target":     {"email"},
			"recipient":  {"a@example.com", "b@example.com,c@example.com"},
			"size":       {"384"},
			"margin":     {"on"},
			"background": {"#fafafa"},
			"Note":       {"ignored"},
		}
		req := httptest.NewRequest(http.MethodPost, "/share", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got shareForm
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "email", got.Target)
		assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, got.Recipients)
		assert.Equal(t, 384, got.Size)
		assert.True(t, got.Margin)
		require.NotNil(t, got.Background)
		assert.Equal(t, qrcode.Color{R: 0xfa, G: 0xfa, B: 0xfa}, *got.Background)
		assert.Empty(t, got.Note)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("target", "link"))
		require.NoError(t, mw.WriteField("size", "200"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/share", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		var got shareForm
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "link", got.Target)
		assert.Equal(t, 200, got.Size)
		assert.Nil(t, got.Background)
	})

	t.Run("json body is not applicable", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/share", strings.NewReader(`{"target":"link"}`))
		req.Header.Set("Content-Type", "application/json")

		var got shareForm
		err := binder.Form()(req, &got)
		assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name  string
			field string
			value string
		}{
			{name: "int", field: "size", value: "big"},
			{name: "bool", field: "margin", value: "maybe"},
			{name: "color", field: "background", value: "#12"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				values := url.Values{tt.field: {tt.value}}
				req := httptest.NewRequest(http.MethodPost, "/share", strings.NewReader(values.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

				var got shareForm
				assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
			})
		}
	})

	t.Run("target must be a struct pointer", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/share", strings.NewReader("target=link"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var s string
		assert.ErrorIs(t, binder.Form()(req, &s), binder.ErrInvalidForm)
		assert.ErrorIs(t, binder.Form()(req, nil), binder.ErrInvalidForm)
	})
}
