package binder_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrshare/pkg/binder"
	"github.com/dmitrymomot/qrshare/pkg/qrcode"
)

type exportPath struct {
	Format  string        `path:"format"`
	Size    int           `path:"size"`
	Version *uint64       `path:"version"`
	Scale   float64       `path:"scale"`
	Inline  bool          `path:"inline"`
	Color   *qrcode.Color `path:"color"`
	Session string        `path:"-"`
	Target  string
}

func params(m map[string]string) func(*http.Request, string) string {
	return func(_ *http.Request, key string) string { return m[key] }
}

func TestPath(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/export", nil)

	t.Run("binds tagged and untagged fields", func(t *testing.T) {
		t.Parallel()
		got := exportPath{Session: "keep"}
		err := binder.Path(params(map[string]string{
			"format":  "svg",
			"size":    "512",
			"version": "7",
			"scale":   "1.5",
			"inline":  "true",
			"color":   "#336699",
			"target":  "email",
			"-":       "never",
		}))(req, &got)
		require.NoError(t, err)

		assert.Equal(t, "svg", got.Format)
		assert.Equal(t, 512, got.Size)
		require.NotNil(t, got.Version)
		assert.Equal(t, uint64(7), *got.Version)
		assert.InDelta(t, 1.5, got.Scale, 0.0001)
		assert.True(t, got.Inline)
		require.NotNil(t, got.Color)
		assert.Equal(t, qrcode.Color{R: 0x33, G: 0x66, B: 0x99}, *got.Color)
		assert.Equal(t, "keep", got.Session)
		assert.Equal(t, "email", got.Target)
	})

	t.Run("missing params leave fields alone", func(t *testing.T) {
		t.Parallel()
		got := exportPath{Format: "png", Size: 256}
		require.NoError(t, binder.Path(params(nil))(req, &got))
		assert.Equal(t, "png", got.Format)
		assert.Equal(t, 256, got.Size)
		assert.Nil(t, got.Version)
		assert.Nil(t, got.Color)
	})

	t.Run("chi url params", func(t *testing.T) {
		t.Parallel()
		r := chi.NewRouter()
		var got exportPath
		var bindErr error
		r.Get("/export/{format}/{size}", func(w http.ResponseWriter, r *http.Request) {
			bindErr = binder.Path(chi.URLParam)(r, &got)
		})
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/export/png/128", nil))

		require.NoError(t, bindErr)
		assert.Equal(t, "png", got.Format)
		assert.Equal(t, 128, got.Size)
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			bind   func(*http.Request, any) error
			target any
			msg    string
		}{
			{name: "nil extractor", bind: binder.Path(nil), target: &exportPath{}, msg: "extractor function is nil"},
			{name: "nil target", bind: binder.Path(params(nil)), target: (*exportPath)(nil), msg: "non-nil pointer"},
			{name: "non-pointer", bind: binder.Path(params(nil)), target: exportPath{}, msg: "non-nil pointer"},
			{name: "pointer to non-struct", bind: binder.Path(params(nil)), target: new(string), msg: "pointer to struct"},
			{name: "bad number", bind: binder.Path(params(map[string]string{"size": "big"})), target: &exportPath{}, msg: "field Size"},
			{name: "bad color", bind: binder.Path(params(map[string]string{"color": "teal"})), target: &exportPath{}, msg: "field Color"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				err := tt.bind(req, tt.target)
				require.ErrorIs(t, err, binder.ErrInvalidPath)
				assert.Contains(t, err.Error(), tt.msg)
			})
		}
	})
}
