package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const minSecretLength = 32

var (
	ErrNoSecret         = errors.New("cookie.no_secret")
	ErrSecretTooShort   = errors.New("cookie.secret_too_short")
	ErrInvalidSignature = errors.New("cookie.invalid_signature")
	ErrCookieNotFound   = errors.New("cookie.not_found")
	ErrInvalidFormat    = errors.New("cookie.invalid_format")
)

type Config struct {
	Secrets  []string      `env:"COOKIE_SECRETS" envSeparator:","`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // lax
}

func DefaultConfig() Config {
	return Config{Path: "/", SameSite: http.SameSiteLaxMode}
}

// Options are the attributes written with every cookie. Cookies are always
// HttpOnly.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	SameSite http.SameSite
}

type Option func(*Options)

func WithPath(path string) Option { return func(o *Options) { o.Path = path } }

func WithMaxAge(seconds int) Option { return func(o *Options) { o.MaxAge = seconds } }

func WithSecure(secure bool) Option { return func(o *Options) { o.Secure = secure } }

func WithSameSite(s http.SameSite) Option { return func(o *Options) { o.SameSite = s } }

// Manager writes and reads cookies with shared defaults. The first secret
// signs, every secret verifies.
type Manager struct {
	secrets  []string
	defaults Options
}

// New trims the secrets and drops empty ones; at least one must remain.
func New(secrets []string, opts ...Option) (*Manager, error) {
	var keep []string
	for i, s := range secrets {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		keep = append(keep, s)
	}
	if len(keep) == 0 {
		return nil, ErrNoSecret
	}

	m := &Manager{secrets: keep, defaults: Options{Path: "/", SameSite: http.SameSiteLaxMode}}
	for _, opt := range opts {
		opt(&m.defaults)
	}
	return m, nil
}

func NewFromConfig(cfg Config) (*Manager, error) {
	opts := []Option{WithSecure(cfg.Secure)}
	if cfg.Path != "" {
		opts = append(opts, WithPath(cfg.Path))
	}
	if cfg.SameSite != 0 {
		opts = append(opts, WithSameSite(cfg.SameSite))
	}
	if cfg.Domain != "" {
		opts = append(opts, func(o *Options) { o.Domain = cfg.Domain })
	}
	return New(cfg.Secrets, opts...)
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	o := m.defaults
	for _, opt := range opts {
		opt(&o)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: true,
		SameSite: o.SameSite,
	})
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	signed := base64.URLEncoding.EncodeToString([]byte(value)) + "|" + mac(m.secrets[0], []byte(value))
	m.Set(w, name, signed, opts...)
}

// GetSigned returns ErrInvalidFormat or ErrInvalidSignature for cookies
// not produced by SetSigned with a known secret.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	encoded, signature, ok := strings.Cut(signed, "|")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	for _, secret := range m.secrets {
		if subtle.ConstantTimeCompare([]byte(signature), []byte(mac(secret, value))) == 1 {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func mac(secret string, value []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(value)
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}
