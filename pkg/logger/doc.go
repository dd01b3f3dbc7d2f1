// Package logger configures log/slog for qrshare.
//
// New returns a plain *slog.Logger. WithEnvironment selects text output at
// debug level for development and JSON at info level elsewhere. Context
// extractors copy request scoped values, such as the request and session IDs,
// into every record logged with a context:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, "qrshare"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), studio.SessionExtractor()),
//	)
//	logger.SetAsDefault(log)
//	log.InfoContext(ctx, "Export finished", logger.Operation("share"), logger.Error(err))
//
// The attribute helpers keep key names consistent across packages. Error,
// SessionID and RequestID return an empty attribute for empty input, which
// slog drops.
package logger
