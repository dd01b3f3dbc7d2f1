package export

import (
	"context"

	"github.com/dmitrymomot/qrshare/pkg/qrcode"
)

// Source yields the element an export should serialize. *qrcode.Handle
// satisfies it.
type Source interface {
	Current() *qrcode.Element
}

// Operation names the kind of attempt a Result describes.
type Operation string

const (
	OperationDownload Operation = "download"
	OperationShare    Operation = "share"
)

// Status is the outcome of an attempt.
type Status string

const (
	StatusSucceeded   Status = "succeeded"
	StatusFailed      Status = "failed"
	StatusUnsupported Status = "unsupported"
)

// Result is the outcome of a single export or share attempt.
type Result struct {
	Operation Operation `json:"operation"`
	Status    Status    `json:"status"`
	Format    Format    `json:"format"`
	Filename  string    `json:"filename"`
	Size      int       `json:"size"`
	Version   uint64    `json:"version"`
	Target    string    `json:"target,omitempty"`
	URL       string    `json:"url,omitempty"`
	Message   string    `json:"message"`
	Err       error     `json:"-"`
}

// OK reports whether the attempt succeeded.
func (r Result) OK() bool { return r.Status == StatusSucceeded }

// Download is a fully encoded image ready to be written.
type Download struct {
	Filename    string
	ContentType string
	Format      Format
	Version     uint64
	Data        []byte
}

// Saver performs the file-save side effect of a download.
type Saver interface {
	Save(ctx context.Context, d Download) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, d Download) error

func (f SaverFunc) Save(ctx context.Context, d Download) error { return f(ctx, d) }

// ShareOptions select the share target and describe the message.
type ShareOptions struct {
	Target    string `json:"target" form:"target"`
	Recipient string `json:"recipient,omitempty" form:"recipient"`
	Title     string `json:"title,omitempty" form:"title"`
	Text      string `json:"text,omitempty" form:"text"`
}

// SharePayload is what a Sharer receives: the PNG plus message metadata.
type SharePayload struct {
	Filename    string
	ContentType string
	Data        []byte
	Title       string
	Text        string
	Recipient   string
}

// ShareReceipt describes a completed share. URL is empty for targets that do
// not publish the image.
type ShareReceipt struct {
	URL string
}

// Sharer delivers a payload to one share target.
type Sharer interface {
	Share(ctx context.Context, p SharePayload) (ShareReceipt, error)
}

// Gate decides whether an attempt may still complete. Commit is called once
// at the point of no return: after the saver for downloads, before the
// sharer for shares. A non-nil error fails the attempt.
type Gate interface {
	Commit() error
}

// NoticeType is the visual kind of a notice.
type NoticeType string

const (
	NoticeSuccess NoticeType = "success"
	NoticeError   NoticeType = "error"
)

// Notice is the user-facing notification emitted once per attempt.
type Notice struct {
	Type      NoticeType
	Message   string
	Operation Operation
	Format    Format
	Filename  string
	URL       string
}

// Notifier delivers notices to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice) error

func (f NotifierFunc) Notify(ctx context.Context, n Notice) error { return f(ctx, n) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notice) error { return nil }
