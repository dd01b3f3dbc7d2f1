package logger

import (
	"log/slog"
	"time"
)

// Error is empty for a nil err, so it can be passed unconditionally.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

func Component(name string) slog.Attr { return slog.String("component", name) }

func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Operation is one of save, share or download.
func Operation(op string) slog.Attr { return slog.String("operation", op) }

func ImageFormat(format string) slog.Attr { return slog.String("format", format) }

func Filename(name string) slog.Attr { return slog.String("filename", name) }

// Version is the element revision an export was rendered from.
func Version(v uint64) slog.Attr { return slog.Uint64("version", v) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }
