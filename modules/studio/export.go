package studio

import (
	"errors"
	"net/http"
	"sync"

	"github.com/dmitrymomot/qrshare/handler"
	"github.com/dmitrymomot/qrshare/pkg/async"
	"github.com/dmitrymomot/qrshare/pkg/export"
	"github.com/dmitrymomot/qrshare/pkg/qrcode"
)

// TargetsResponse lists the share targets the server can serve.
type TargetsResponse struct {
	Targets []string `json:"targets"`
}

func (s *Service) export(ctx handler.Context, req FormatRequest) handler.Response {
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return handler.Error(errors.Join(ErrUnknownFormat, err))
	}

	sid := SessionID(ctx)
	download := export.NewMemorySaver()
	var saver export.Saver = download
	if s.archive != nil {
		saver = export.MultiSaver{download, s.archive}
	}

	gate := &requestGate{}
	pipeline := s.pipeline.With(
		export.WithSaver(saver),
		export.WithNotifier(s.notifications.Notifier(sid)),
		export.WithGate(gate),
	)

	res, err := s.await(pipeline.ExportAsImage(ctx, s.workspaces.Get(sid), format), gate)
	if err != nil {
		return handler.Error(awaitError(err))
	}
	if !res.OK() {
		return resultResponse(res)
	}

	d, ok := download.Last()
	if !ok {
		return handler.Error(handler.ErrInternalServerError)
	}
	return handler.Attachment(d.Data, d.Filename, d.ContentType)
}

func (s *Service) share(ctx handler.Context, req export.ShareOptions) handler.Response {
	sid := SessionID(ctx)
	gate := &requestGate{}
	pipeline := s.pipeline.With(
		export.WithNotifier(s.notifications.Notifier(sid)),
		export.WithGate(gate),
	)

	res, err := s.await(pipeline.ShareImage(ctx, s.workspaces.Get(sid), req), gate)
	if err != nil {
		return handler.Error(awaitError(err))
	}
	return resultResponse(res)
}

// errAbandoned fails attempts that finish after their request gave up.
var errAbandoned = errors.New("studio: request stopped waiting for the export")

// requestGate ties an attempt to the request waiting for it. Whichever of
// Commit and abandon comes first wins.
type requestGate struct {
	mu        sync.Mutex
	committed bool
	abandoned bool
}

func (g *requestGate) Commit() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.abandoned {
		return errAbandoned
	}
	g.committed = true
	return nil
}

// abandon reports false when the attempt has already committed.
func (g *requestGate) abandon() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.committed {
		return false
	}
	g.abandoned = true
	return true
}

// await waits up to ExportTimeout. After that the request gives up unless
// the attempt already committed, in which case its result is close and
// worth waiting for.
func (s *Service) await(f *async.Future[export.Result], gate *requestGate) (export.Result, error) {
	res, err := f.AwaitWithTimeout(s.cfg.ExportTimeout)
	if !errors.Is(err, async.ErrTimeout) {
		return res, err
	}
	if gate.abandon() {
		return res, err
	}
	return f.Await()
}

func (s *Service) targets(ctx handler.Context, _ struct{}) handler.Response {
	targets := s.pipeline.Targets()
	if targets == nil {
		targets = []string{}
	}
	return handler.JSON(TargetsResponse{Targets: targets})
}

// resultResponse renders a Result as JSON, with the error block filled in
// for failed attempts.
func resultResponse(res export.Result) handler.Response {
	status := resultStatus(res)
	if status == http.StatusOK {
		return handler.JSON(res)
	}
	return handler.JSON(handler.JSONResponse{
		Data: res,
		Error: &handler.ErrorDetail{
			Code:    string(res.Status),
			Message: res.Message,
		},
	}, handler.WithJSONStatus(status))
}

func resultStatus(res export.Result) int {
	err := res.Err
	switch {
	case res.OK():
		return http.StatusOK
	case res.Status == export.StatusUnsupported:
		return http.StatusUnprocessableEntity
	case errors.Is(err, export.ErrNoElement):
		return http.StatusNotFound
	case errors.Is(err, qrcode.ErrDetached):
		return http.StatusConflict
	case errors.Is(err, export.ErrRecipientRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, export.ErrShareFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func awaitError(err error) error {
	if errors.Is(err, async.ErrTimeout) {
		return errors.Join(ErrExportTimeout, err)
	}
	return err
}
