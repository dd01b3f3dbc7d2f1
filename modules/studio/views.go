package studio

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/qrshare/handler"
	"github.com/dmitrymomot/qrshare/pkg/notifications"
)

// NotificationToast renders a notification as a toast element. Toasts with a
// share link include it.
func NotificationToast(n notifications.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="toast-%s" class="toast toast-%s" role="status">`,
			templ.EscapeString(n.ID), templ.EscapeString(string(n.Type))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<span class="toast-message">`+templ.EscapeString(n.Message)+`</span>`); err != nil {
			return err
		}
		if n.URL != "" {
			if _, err := fmt.Fprintf(w, `<a class="toast-link" href="%s" target="_blank" rel="noopener">Open</a>`,
				templ.EscapeString(n.URL)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// ErrorToast renders request errors for Datastar clients.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="toast toast-%s" role="alert" data-request-id="%s"><span class="toast-message">%s</span></div>`,
			templ.EscapeString(p.Type), templ.EscapeString(p.RequestID), templ.EscapeString(p.Message))
		return err
	})
}
