package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrshare/handler"
)

func TestAttachment(t *testing.T) {
	t.Parallel()

	t.Run("download headers", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/export/svg", nil)

		err := handler.Attachment([]byte("<svg/>"), "qr-code.svg", "image/svg+xml").Render(w, r)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="qr-code.svg"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "6", w.Header().Get("Content-Length"))
		assert.Equal(t, "<svg/>", w.Body.String())
	})

	t.Run("filename cannot inject headers", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := handler.Attachment([]byte("x"), "../evil\r\nSet-Cookie: a=\"b\".png", "image/png").Render(w, r)
		require.NoError(t, err)

		cd := w.Header().Get("Content-Disposition")
		assert.NotContains(t, cd, "\r")
		assert.NotContains(t, cd, "\n")
		assert.NotContains(t, cd, "..")
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})

	t.Run("content type detected when empty", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

		require.NoError(t, handler.Attachment(png, "qr-code.png", "").Render(w, r))
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})
}

func TestInline(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/preview.svg", nil)

	require.NoError(t, handler.Inline([]byte("<svg/>"), "preview.svg", "image/svg+xml").Render(w, r))

	assert.Equal(t, `inline; filename="preview.svg"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
