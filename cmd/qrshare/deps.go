package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/qrshare/pkg/cookie"
	"github.com/dmitrymomot/qrshare/pkg/email"
	"github.com/dmitrymomot/qrshare/pkg/file"
	"github.com/dmitrymomot/qrshare/pkg/logger"
)

var errUnknownDriver = errors.New("unknown storage driver")

func newStorage(ctx context.Context, cfg Config) (file.Storage, error) {
	var (
		storage file.Storage
		err     error
	)
	switch strings.ToLower(cfg.StorageDriver) {
	case driverLocal, "":
		storage, err = file.NewLocalStorage(cfg.StorageDir, cfg.StorageBaseURL)
	case driverS3:
		storage, err = file.NewS3Storage(ctx, cfg.S3)
	default:
		err = fmt.Errorf("%w: %q", errUnknownDriver, cfg.StorageDriver)
	}
	if err != nil {
		return nil, err
	}
	return storage, nil
}

// newEmailSender uses postmark when a server token is configured. Outside
// production mail is written to disk instead.
func newEmailSender(cfg Config, log *slog.Logger) (email.EmailSender, error) {
	if cfg.Mail.PostmarkServerToken != "" {
		client, err := email.NewPostmarkClient(cfg.Mail)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	if cfg.AppEnv.IsProduction() {
		return nil, errors.New("POSTMARK_SERVER_TOKEN is required in production")
	}
	log.Warn("Postmark is not configured, emails are written to disk",
		logger.Component("email"), slog.String("dir", cfg.EmailDevDir))
	return email.NewDevSender(cfg.EmailDevDir), nil
}

// newCookieManager requires COOKIE_SECRETS in production. Other environments
// get a random secret, so sessions do not survive a restart.
func newCookieManager(cfg Config, log *slog.Logger) (*cookie.Manager, error) {
	cc := cfg.Cookie
	if len(cc.Secrets) == 0 && !cfg.AppEnv.IsProduction() {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cc.Secrets = []string{secret}
		log.Warn("COOKIE_SECRETS is not set, using an ephemeral secret", logger.Component("cookie"))
	}
	return cookie.NewFromConfig(cc)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate cookie secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func isLocalPath(baseURL string) bool {
	return strings.HasPrefix(baseURL, "/") && !strings.HasPrefix(baseURL, "//") && baseURL != "/"
}
