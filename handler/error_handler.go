package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/qrshare/pkg/environment"
	"github.com/dmitrymomot/qrshare/pkg/logger"
	"github.com/dmitrymomot/qrshare/pkg/requestid"
)

// ErrorToastParams is passed to ErrorHandlerConfig.ErrorToast.
type ErrorToastParams struct {
	Message   string
	Type      string // "warning" for 4xx, "error" for 5xx
	RequestID string
}

type ErrorHandlerConfig struct {
	// ErrorToast renders the toast sent to DataStar requests. Without it
	// DataStar requests get the JSON body too.
	ErrorToast func(ErrorToastParams) templ.Component

	ToastTarget string                    // default "#toast-container"
	ToastMode   datastar.ElementPatchMode // default PatchPrepend
}

// ErrorInfo is the classification of a handler error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	}

	// validation wins over an HTTPError in the same chain
	var valErr ValidationError
	if errors.As(err, &valErr) {
		info.StatusCode = http.StatusUnprocessableEntity
		info.Message = valErr.Error()
	}

	info.Type, info.LogLevel = "error", slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.Type, info.LogLevel = "warning", slog.LevelWarn
	}
	return info
}

// publicError hides the text of unclassified errors in production. It is
// still logged in full.
func publicError(r *http.Request, err error) error {
	if !environment.IsProduction(r.Context()) {
		return err
	}
	var (
		httpErr HTTPError
		valErr  ValidationError
	)
	if errors.As(err, &httpErr) || errors.As(err, &valErr) {
		return err
	}
	return ErrInternalServerError
}

// JSONErrorHandler logs err and answers with a JSONError body, or with the
// error toast when the request comes from DataStar.
func JSONErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		var resp Response
		if IsDataStar(r) && cfg.ErrorToast != nil {
			// event streams always answer 200, the toast carries the failure
			resp = Templ(cfg.ErrorToast(ErrorToastParams{
				Message:   info.Message,
				Type:      info.Type,
				RequestID: requestID,
			}), WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
		} else {
			resp = JSONError(publicError(r, err))
		}

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error",
				logger.RequestID(requestID),
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
