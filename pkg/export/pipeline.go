package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/dmitrymomot/qrshare/pkg/async"
	"github.com/dmitrymomot/qrshare/pkg/logger"
	"github.com/dmitrymomot/qrshare/pkg/qrcode"
)

// Pipeline serializes the current element and performs a download or share
// side effect, emitting exactly one notice per attempt.
// A Pipeline is immutable after construction and safe for concurrent use.
type Pipeline struct {
	saver         Saver
	sharers       map[string]Sharer
	defaultTarget string
	notifier      Notifier
	gate          Gate
	encoders      map[Format]Encoder
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSaver sets the download side effect. Without a saver downloads are
// encoded and reported but not written anywhere.
func WithSaver(s Saver) Option {
	return func(p *Pipeline) {
		p.saver = s
	}
}

// WithSharer registers a share target. The first registered target becomes
// the default unless WithDefaultTarget says otherwise.
func WithSharer(target string, s Sharer) Option {
	return func(p *Pipeline) {
		if target == "" || s == nil {
			return
		}
		p.sharers[target] = s
		if p.defaultTarget == "" {
			p.defaultTarget = target
		}
	}
}

// WithDefaultTarget selects the target used when ShareOptions.Target is empty.
func WithDefaultTarget(target string) Option {
	return func(p *Pipeline) {
		p.defaultTarget = target
	}
}

// WithNotifier sets where notices go.
func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) {
		if n != nil {
			p.notifier = n
		}
	}
}

// WithGate makes every attempt commit through g before it counts as done.
func WithGate(g Gate) Option {
	return func(p *Pipeline) {
		p.gate = g
	}
}

// WithEncoder overrides the encoder of a single format.
func WithEncoder(f Format, enc Encoder) Option {
	return func(p *Pipeline) {
		if enc != nil {
			p.encoders[f] = enc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates a pipeline. With no sharer registered every share
// attempt reports StatusUnsupported.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		sharers:  make(map[string]Sharer),
		notifier: nopNotifier{},
		encoders: defaultEncoders(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// With returns a copy of p with opts applied. p itself is not modified.
func (p *Pipeline) With(opts ...Option) *Pipeline {
	cp := *p
	cp.sharers = maps.Clone(p.sharers)
	cp.encoders = maps.Clone(p.encoders)
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// Targets returns the registered share targets in sorted order.
func (p *Pipeline) Targets() []string {
	return slices.Sorted(maps.Keys(p.sharers))
}

// CanShare reports whether target (or the default target when empty) has a sharer.
func (p *Pipeline) CanShare(target string) bool {
	_, ok := p.sharer(target)
	return ok
}

func (p *Pipeline) sharer(target string) (Sharer, bool) {
	if target == "" {
		target = p.defaultTarget
	}
	s, ok := p.sharers[target]
	return s, ok
}

// ExportAsImage reads the current element of src now and, on a background
// task, encodes it as format and hands it to the saver. The future always
// resolves with a nil error; failures are reported in Result.Err.
// Caller cancellation does not abort the task.
func (p *Pipeline) ExportAsImage(ctx context.Context, src Source, format Format) *async.Future[Result] {
	el := current(src)
	ctx = context.WithoutCancel(ctx)

	return async.Go(ctx, func(ctx context.Context) (Result, error) {
		res := Result{
			Operation: OperationDownload,
			Format:    format,
			Filename:  Filename(format),
		}
		return p.settle(ctx, res, func(res *Result) error {
			data, err := p.encode(el, format)
			if err != nil {
				return err
			}
			res.Size = len(data)
			res.Version = el.Version()

			if p.saver != nil {
				d := Download{
					Filename:    res.Filename,
					ContentType: format.ContentType(),
					Format:      format,
					Version:     res.Version,
					Data:        data,
				}
				if err := guard(func() error { return p.saver.Save(ctx, d) }); err != nil {
					return errors.Join(ErrSaveFailed, err)
				}
			}
			if err := p.commit(); err != nil {
				return errors.Join(ErrSaveFailed, err)
			}
			return nil
		}), nil
	})
}

// ShareImage reads the current element of src now and, on a background task,
// encodes it as PNG and passes it to the sharer of opts.Target. A missing
// sharer yields StatusUnsupported and never falls back to a download.
func (p *Pipeline) ShareImage(ctx context.Context, src Source, opts ShareOptions) *async.Future[Result] {
	el := current(src)
	ctx = context.WithoutCancel(ctx)

	return async.Go(ctx, func(ctx context.Context) (Result, error) {
		target := opts.Target
		if target == "" {
			target = p.defaultTarget
		}
		res := Result{
			Operation: OperationShare,
			Format:    FormatPNG,
			Filename:  Filename(FormatPNG),
			Target:    target,
		}
		return p.settle(ctx, res, func(res *Result) error {
			sharer, ok := p.sharer(target)
			if !ok {
				if target == "" {
					return ErrShareUnsupported
				}
				return fmt.Errorf("%w: target %q", ErrShareUnsupported, target)
			}

			data, err := p.encode(el, FormatPNG)
			if err != nil {
				return err
			}
			res.Size = len(data)
			res.Version = el.Version()

			payload := SharePayload{
				Filename:    res.Filename,
				ContentType: FormatPNG.ContentType(),
				Data:        data,
				Title:       opts.Title,
				Text:        opts.Text,
				Recipient:   opts.Recipient,
			}
			if err := p.commit(); err != nil {
				return errors.Join(ErrShareFailed, err)
			}
			var receipt ShareReceipt
			err = guard(func() error {
				var err error
				receipt, err = sharer.Share(ctx, payload)
				return err
			})
			if err != nil {
				return errors.Join(ErrShareFailed, err)
			}
			res.URL = receipt.URL
			return nil
		}), nil
	})
}

func (p *Pipeline) commit() error {
	if p.gate == nil {
		return nil
	}
	return guard(p.gate.Commit)
}

func current(src Source) *qrcode.Element {
	if src == nil {
		return nil
	}
	return src.Current()
}

// encode runs the encoder of format on el. Every failure, a panic included,
// is reported as ErrSerialization.
func (p *Pipeline) encode(el *qrcode.Element, format Format) ([]byte, error) {
	if el == nil {
		return nil, errors.Join(ErrSerialization, ErrNoElement)
	}
	enc, ok := p.encoders[format]
	if !ok {
		return nil, errors.Join(ErrSerialization, fmt.Errorf("%w: %q", ErrUnknownFormat, format))
	}

	var data []byte
	err := guard(func() error {
		var err error
		data, err = enc(el)
		return err
	})
	if err != nil {
		return nil, errors.Join(ErrSerialization, err)
	}
	return data, nil
}

// settle runs body, classifies its outcome, emits the single notice and logs
// the attempt.
func (p *Pipeline) settle(ctx context.Context, res Result, body func(*Result) error) Result {
	start := time.Now()

	err := guard(func() error { return body(&res) })
	switch {
	case err == nil:
		res.Status = StatusSucceeded
	case errors.Is(err, ErrShareUnsupported):
		res.Status = StatusUnsupported
	default:
		res.Status = StatusFailed
	}
	res.Err = err

	n := noticeFor(res)
	res.Message = n.Message
	if nerr := guard(func() error { return p.notifier.Notify(ctx, n) }); nerr != nil {
		p.logger.WarnContext(ctx, "failed to deliver export notice",
			logger.Component("export"),
			logger.Operation(string(res.Operation)),
			logger.Error(nerr),
		)
	}

	attrs := []any{
		logger.Component("export"),
		logger.Operation(string(res.Operation)),
		logger.ImageFormat(string(res.Format)),
		logger.Filename(res.Filename),
		logger.Version(res.Version),
		slog.String("status", string(res.Status)),
		logger.Duration(time.Since(start)),
	}
	if err != nil {
		p.logger.WarnContext(ctx, "export attempt failed", append(attrs, logger.Error(err))...)
	} else {
		p.logger.InfoContext(ctx, "export attempt succeeded", append(attrs, slog.Int("size", res.Size))...)
	}

	return res
}

func noticeFor(res Result) Notice {
	n := Notice{
		Type:      NoticeError,
		Operation: res.Operation,
		Format:    res.Format,
		Filename:  res.Filename,
		URL:       res.URL,
	}
	switch res.Operation {
	case OperationDownload:
		if res.OK() {
			n.Type, n.Message = NoticeSuccess, MsgDownloaded(res.Format)
		} else {
			n.Message = MsgDownloadFailed
		}
	case OperationShare:
		switch res.Status {
		case StatusSucceeded:
			n.Type, n.Message = NoticeSuccess, MsgShared
		case StatusUnsupported:
			n.Message = MsgShareUnsupported
		default:
			n.Message = MsgShareFailed
		}
	}
	return n
}

// guard converts a panic in fn into an error wrapping async.ErrPanic.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", async.ErrPanic, r)
		}
	}()
	return fn()
}
