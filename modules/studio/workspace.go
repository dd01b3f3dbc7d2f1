package studio

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/qrshare/pkg/cache"
	"github.com/dmitrymomot/qrshare/pkg/logger"
	"github.com/dmitrymomot/qrshare/pkg/qrcode"
)

// Workspaces keeps one qrcode.Handle per session. The least recently used
// workspace is dropped when the limit is reached; its handle is closed, so
// exports still holding its element fail instead of serializing stale state.
type Workspaces struct {
	handles  *cache.LRUCache[string, *qrcode.Handle]
	defaults qrcode.Params
	logger   *slog.Logger
}

// NewWorkspaces creates a registry holding at most capacity workspaces. New
// workspaces start with defaults already rendered.
func NewWorkspaces(capacity int, defaults qrcode.Params, log *slog.Logger) *Workspaces {
	if log == nil {
		log = slog.Default()
	}
	w := &Workspaces{
		handles:  cache.NewLRUCache[string, *qrcode.Handle](capacity),
		defaults: defaults,
		logger:   log,
	}
	w.handles.SetEvictCallback(func(sessionID string, h *qrcode.Handle) {
		h.Close()
		w.logger.LogAttrs(context.Background(), slog.LevelDebug, "workspace closed",
			logger.SessionID(sessionID),
			logger.Component("studio"),
		)
	})
	return w
}

// Get returns the workspace of sessionID, creating it on first use.
func (w *Workspaces) Get(sessionID string) *qrcode.Handle {
	h, _ := w.handles.GetOrCreate(sessionID, func() *qrcode.Handle {
		h := qrcode.NewHandle()
		if _, err := h.Apply(w.defaults); err != nil {
			w.logger.LogAttrs(context.Background(), slog.LevelWarn, "default parameters rejected",
				logger.SessionID(sessionID),
				logger.Error(err),
				logger.Component("studio"),
			)
		}
		return h
	})
	return h
}

// Defaults returns the parameters new workspaces start from.
func (w *Workspaces) Defaults() qrcode.Params { return w.defaults }

func (w *Workspaces) Len() int { return w.handles.Len() }

// Close closes every workspace.
func (w *Workspaces) Close() { w.handles.Clear() }
