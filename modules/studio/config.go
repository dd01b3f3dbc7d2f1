package studio

import "time"

// Config holds the studio module settings.
type Config struct {
	CookieName     string        `env:"STUDIO_COOKIE_NAME" envDefault:"qrshare_session"`
	SessionTTL     time.Duration `env:"STUDIO_SESSION_TTL" envDefault:"720h"`
	MaxSessions    int           `env:"STUDIO_MAX_SESSIONS" envDefault:"1000"`
	DefaultPayload string        `env:"STUDIO_DEFAULT_PAYLOAD" envDefault:"https://example.com"`
	NoticeLimit    int           `env:"STUDIO_NOTICE_LIMIT" envDefault:"20"`
	ExportTimeout  time.Duration `env:"STUDIO_EXPORT_TIMEOUT" envDefault:"30s"`
	ToastTarget    string        `env:"STUDIO_TOAST_TARGET" envDefault:"#toast-container"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		CookieName:     "qrshare_session",
		SessionTTL:     30 * 24 * time.Hour,
		MaxSessions:    1000,
		DefaultPayload: "https://example.com",
		NoticeLimit:    20,
		ExportTimeout:  30 * time.Second,
		ToastTarget:    "#toast-container",
	}
}
