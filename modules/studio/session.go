package studio

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrshare/handler"
	"github.com/dmitrymomot/qrshare/pkg/cookie"
	"github.com/dmitrymomot/qrshare/pkg/logger"
)

var sessionKey = handler.NewContextKey("studio_session")

// SessionID returns the session attached by the session middleware.
func SessionID(ctx context.Context) string {
	return handler.ContextValue[string](ctx, sessionKey)
}

// SessionExtractor adds the session id to log records.
func SessionExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := SessionID(ctx); id != "" {
			return logger.SessionID(id), true
		}
		return slog.Attr{}, false
	}
}

// sessions reads the signed session cookie and issues a new session id when
// the cookie is missing or fails verification.
func (s *Service) sessions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.cookies.GetSigned(r, s.cfg.CookieName)
		if err == nil {
			if _, perr := uuid.Parse(id); perr != nil {
				err = perr
			}
		}
		if err != nil {
			if !errors.Is(err, cookie.ErrCookieNotFound) {
				s.logger.LogAttrs(r.Context(), slog.LevelDebug, "session cookie rejected",
					logger.Error(err),
					logger.Component("studio"),
				)
			}
			id = uuid.NewString()
			s.cookies.SetSigned(w, s.cfg.CookieName, id, cookie.WithMaxAge(int(s.cfg.SessionTTL.Seconds())))
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, id)))
	})
}
