package studio

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/qrshare/handler"
	"github.com/dmitrymomot/qrshare/pkg/binder"
	"github.com/dmitrymomot/qrshare/pkg/cookie"
	"github.com/dmitrymomot/qrshare/pkg/export"
	"github.com/dmitrymomot/qrshare/pkg/notifications"
	"github.com/dmitrymomot/qrshare/pkg/qrcode"
	"github.com/dmitrymomot/qrshare/pkg/ratelimiter"
)

// Service serves the per-session QR workspace: parameter edits, previews,
// downloads, shares and the notification feed.
type Service struct {
	cfg           Config
	workspaces    *Workspaces
	pipeline      *export.Pipeline
	notifications *notifications.Manager
	cookies       *cookie.Manager
	archive       export.Saver
	shareLimiter  ratelimiter.Limiter
	errorHandler  handler.ErrorHandler[handler.Context]
	logger        *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) ServiceOption {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithArchive stores a copy of every successful download through saver.
// An archive failure fails the download.
func WithArchive(saver export.Saver) ServiceOption {
	return func(s *Service) {
		s.archive = saver
	}
}

// WithShareLimiter throttles POST /share per session. Denied shares get
// ErrShareRateLimited.
func WithShareLimiter(l ratelimiter.Limiter) ServiceOption {
	return func(s *Service) {
		s.shareLimiter = l
	}
}

// NewService wires the studio. pipeline carries the share targets; savers and
// notifiers are attached per request.
func NewService(
	cfg Config,
	pipeline *export.Pipeline,
	notices *notifications.Manager,
	cookies *cookie.Manager,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		cfg:           cfg,
		pipeline:      pipeline,
		notifications: notices,
		cookies:       cookies,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.JSONErrorHandler(s.logger, handler.ErrorHandlerConfig{
			ErrorToast:  ErrorToast,
			ToastTarget: cfg.ToastTarget,
		})
	}

	defaults := qrcode.DefaultParams(cfg.DefaultPayload)
	s.workspaces = NewWorkspaces(cfg.MaxSessions, defaults, s.logger)
	return s
}

// Workspaces exposes the session registry.
func (s *Service) Workspaces() *Workspaces { return s.workspaces }

// Close releases every workspace.
func (s *Service) Close() { s.workspaces.Close() }

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(s.sessions)

	r.Get("/params", handler.Wrap(s.getParams,
		handler.WithBinder[handler.Context, PreviewQuery](binder.Query()),
		handler.WithErrorHandler[handler.Context, PreviewQuery](s.errorHandler),
	))
	r.Put("/params", handler.Wrap(s.putParams,
		handler.WithBinders[handler.Context, ParamsRequest](binder.JSON(), binder.Form()),
		handler.WithErrorHandler[handler.Context, ParamsRequest](s.errorHandler),
	))
	r.Get("/preview.{format}", handler.Wrap(s.preview,
		handler.WithBinder[handler.Context, FormatRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, FormatRequest](s.errorHandler),
	))

	exportHandler := handler.Wrap(s.export,
		handler.WithBinder[handler.Context, FormatRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, FormatRequest](s.errorHandler),
	)
	r.Get("/export/{format}", exportHandler)
	r.Post("/export/{format}", exportHandler)

	r.With(s.limitShares).Post("/share", handler.Wrap(s.share,
		handler.WithBinders[handler.Context, export.ShareOptions](binder.JSON(), binder.Form()),
		handler.WithErrorHandler[handler.Context, export.ShareOptions](s.errorHandler),
	))
	r.Get("/share/targets", handler.Wrap(s.targets,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Get("/notifications", handler.Wrap(s.listNotifications,
		handler.WithBinder[handler.Context, NotificationsQuery](binder.Query()),
		handler.WithErrorHandler[handler.Context, NotificationsQuery](s.errorHandler),
	))
	r.Delete("/notifications", handler.Wrap(s.clearNotifications,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/notifications/stream", handler.Wrap(s.streamNotifications,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

func (s *Service) limitShares(next http.Handler) http.Handler {
	if s.shareLimiter == nil {
		return next
	}
	return ratelimiter.Middleware(s.shareLimiter,
		func(r *http.Request) string {
			if id := SessionID(r.Context()); id != "" {
				return "share:" + id
			}
			return ""
		},
		func(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
			s.errorHandler(handler.NewContext(w, r), ErrShareRateLimited)
		},
	)(next)
}
