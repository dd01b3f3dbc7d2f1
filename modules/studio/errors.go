package studio

import (
	"net/http"

	"github.com/dmitrymomot/qrshare/handler"
)

var (
	ErrNothingRendered   = handler.NewHTTPError(http.StatusNotFound, "nothing_rendered")
	ErrUnknownFormat     = handler.NewHTTPError(http.StatusNotFound, "unknown_format")
	ErrWorkspaceClosed   = handler.NewHTTPError(http.StatusConflict, "workspace_closed")
	ErrStreamUnavailable = handler.NewHTTPError(http.StatusServiceUnavailable, "stream_unavailable")
	ErrExportTimeout     = handler.NewHTTPError(http.StatusServiceUnavailable, "export_timeout")
	ErrStreamRequired    = handler.NewHTTPError(http.StatusNotAcceptable, "event_stream_required")
	ErrShareRateLimited  = handler.NewHTTPError(http.StatusTooManyRequests, "share_rate_limited")
)
