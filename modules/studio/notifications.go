package studio

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/qrshare/handler"
	"github.com/dmitrymomot/qrshare/pkg/logger"
	"github.com/dmitrymomot/qrshare/pkg/notifications"
)

// NotificationsQuery filters the notification list. Since is a unix
// timestamp in seconds.
type NotificationsQuery struct {
	Limit int    `query:"limit"`
	Since *int64 `query:"since"`
}

type NotificationsResponse struct {
	Notifications []notifications.Notification `json:"notifications"`
}

func (s *Service) listNotifications(ctx handler.Context, req NotificationsQuery) handler.Response {
	limit := req.Limit
	if limit <= 0 || limit > s.cfg.NoticeLimit {
		limit = s.cfg.NoticeLimit
	}
	opts := notifications.ListOptions{Limit: limit}
	if req.Since != nil {
		since := time.Unix(*req.Since, 0)
		opts.Since = &since
	}

	list, err := s.notifications.List(ctx, SessionID(ctx), opts)
	if err != nil {
		return handler.Error(err)
	}
	if list == nil {
		list = []notifications.Notification{}
	}
	return handler.JSON(NotificationsResponse{Notifications: list})
}

func (s *Service) clearNotifications(ctx handler.Context, _ struct{}) handler.Response {
	if err := s.notifications.Clear(ctx, SessionID(ctx)); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}

// streamNotifications pushes every new notification of the session as a
// toast until the client disconnects.
func (s *Service) streamNotifications(ctx handler.Context, _ struct{}) handler.Response {
	if !handler.IsDataStar(ctx.Request()) {
		return handler.Error(ErrStreamRequired)
	}

	sub, err := s.notifications.Subscribe(ctx, SessionID(ctx))
	if err != nil {
		if errors.Is(err, notifications.ErrStreamUnavailable) {
			return handler.Error(errors.Join(ErrStreamUnavailable, err))
		}
		return handler.Error(err)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		defer sub.Close()

		// the server write timeout would otherwise cut long-lived streams
		if err := http.NewResponseController(stream.ResponseWriter()).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
			s.logger.LogAttrs(stream, slog.LevelDebug, "cannot clear write deadline",
				logger.Error(err),
				logger.Component("studio"),
			)
		}

		msgs := sub.Receive(stream)
		for {
			select {
			case <-stream.Done():
				return nil
			case msg, ok := <-msgs:
				if !ok {
					return nil
				}
				err := stream.SendComponent(NotificationToast(msg.Data),
					handler.WithTarget(s.cfg.ToastTarget),
					handler.WithPatchMode(handler.PatchPrepend),
				)
				if err != nil {
					return err
				}
			}
		}
	})
}
