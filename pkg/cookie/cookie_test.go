package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrshare/pkg/cookie"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

// roundTrip replays the Set-Cookie headers of w on a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{name: "no secrets", secrets: nil, wantErr: cookie.ErrNoSecret},
		{name: "empty secrets", secrets: []string{"", ""}, wantErr: cookie.ErrNoSecret},
		{name: "secret too short", secrets: []string{"short"}, wantErr: cookie.ErrSecretTooShort},
		{name: "valid secret", secrets: []string{secret}},
		{name: "rotation", secrets: []string{secret, oldSecret}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.SetSigned(w, "qrshare_session", "6f1c1b1e-0c1a-4b8e-9a57-1f3e5d0d2c11")

		got, err := m.GetSigned(roundTrip(w), "qrshare_session")
		require.NoError(t, err)
		assert.Equal(t, "6f1c1b1e-0c1a-4b8e-9a57-1f3e5d0d2c11", got)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "qrshare_session")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.SetSigned(w, "qrshare_session", "alice")
		c := w.Result().Cookies()[0]

		_, sig, _ := strings.Cut(c.Value, "|")
		forged := httptest.NewRequest(http.MethodGet, "/", nil)
		forged.AddCookie(&http.Cookie{Name: c.Name, Value: "Ym9i|" + sig}) // "bob"

		_, err := m.GetSigned(forged, "qrshare_session")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("unsigned value", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "qrshare_session", Value: "plain"})

		_, err := m.GetSigned(r, "qrshare_session")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestManager_SecretRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secret, oldSecret})
	require.NoError(t, err)
	fresh, err := cookie.New([]string{secret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	old.SetSigned(w, "s", "value")
	r := roundTrip(w)

	got, err := rotated.GetSigned(r, "s")
	require.NoError(t, err, "Retired secrets should still verify")
	assert.Equal(t, "value", got)

	_, err = fresh.GetSigned(r, "s")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestManager_Options(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret}, cookie.WithSecure(true), cookie.WithPath("/studio"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Set(w, "a", "1", cookie.WithMaxAge(60), cookie.WithSameSite(http.SameSiteStrictMode))
	m.Set(w, "b", "2")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)

	assert.Equal(t, "/studio", cookies[0].Path)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 60, cookies[0].MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)

	assert.Equal(t, 0, cookies[1].MaxAge, "Per-call options should not leak into defaults")
	assert.Equal(t, http.SameSiteLaxMode, cookies[1].SameSite)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.DefaultConfig()
	_, err := cookie.NewFromConfig(cfg)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	cfg.Secrets = []string{" " + secret + " ", oldSecret, ""}
	cfg.Secure = true
	m, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.SetSigned(w, "s", "v")
	c := w.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)

	got, err := m.GetSigned(roundTrip(w), "s")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
