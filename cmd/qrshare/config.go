package main

import (
	"time"

	"github.com/dmitrymomot/qrshare/modules/studio"
	"github.com/dmitrymomot/qrshare/pkg/cookie"
	"github.com/dmitrymomot/qrshare/pkg/email"
	"github.com/dmitrymomot/qrshare/pkg/environment"
	"github.com/dmitrymomot/qrshare/pkg/file"
	"github.com/dmitrymomot/qrshare/pkg/httpserver"
	"github.com/dmitrymomot/qrshare/pkg/ratelimiter"
	"github.com/dmitrymomot/qrshare/pkg/redis"
)

// Storage drivers.
const (
	driverLocal = "local"
	driverS3    = "s3"
)

// Config is the application configuration
type Config struct {
	AppName string                  `env:"APP_NAME" envDefault:"qrshare"`
	AppEnv  environment.Environment `env:"APP_ENV" envDefault:"development"`

	StorageDriver  string `env:"STORAGE_DRIVER" envDefault:"local"`
	StorageDir     string `env:"STORAGE_DIR" envDefault:"./data"`
	StorageBaseURL string `env:"STORAGE_BASE_URL" envDefault:"/files"`

	ExportArchive    bool   `env:"EXPORT_ARCHIVE" envDefault:"false"`
	ExportArchiveDir string `env:"EXPORT_ARCHIVE_DIR" envDefault:"exports"`
	ShareLinkDir     string `env:"SHARE_LINK_DIR" envDefault:"shares"`
	ShareSubject     string `env:"SHARE_EMAIL_SUBJECT" envDefault:"Your QR code"`
	EmailDevDir      string `env:"EMAIL_DEV_DIR" envDefault:"./data/mail"`

	NotificationTTL    time.Duration `env:"NOTIFICATION_TTL" envDefault:"10m"`
	NotificationBuffer int           `env:"NOTIFICATION_BUFFER" envDefault:"16"`
	// Redis pub/sub channel prefix, the session ID is appended
	NotificationChannel string `env:"NOTIFICATION_CHANNEL" envDefault:"qrshare:notifications:"`

	// Per-session share budget, SHARE_RATE_CAPACITY=0 disables it
	ShareLimit     ratelimiter.Config `envPrefix:"SHARE_RATE_"`
	ShareLimitKeys string             `env:"SHARE_RATE_REDIS_PREFIX" envDefault:"qrshare:ratelimit:"`

	Server httpserver.Config
	Redis  redis.Config
	Mail   email.Config
	S3     file.S3Config
	Cookie cookie.Config
	Studio studio.Config
}
