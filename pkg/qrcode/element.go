package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Element is a rendered QR code. It is immutable once returned by Render and
// safe for concurrent serialization.
type Element struct {
	params   Params
	version  uint64
	detached atomic.Bool

	// skip2 rebuilds its symbol on every Image/Bitmap call
	mu   sync.Mutex
	code *skipqrcode.QRCode
}

// Render validates p and encodes the payload.
func Render(p Params) (*Element, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	level, _ := p.Level.recovery()

	code, err := skipqrcode.New(p.Payload, level)
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	code.ForegroundColor = p.Foreground.RGBA()
	code.BackgroundColor = p.Background.RGBA()
	code.DisableBorder = !p.IncludeMargin

	return &Element{params: p, code: code}, nil
}

// Params returns the parameters the element was rendered from.
func (e *Element) Params() Params { return e.params }

// Version is the handle revision that published the element, 0 if it was
// rendered outside a Handle.
func (e *Element) Version() uint64 { return e.version }

// Detached reports whether the owning handle has been closed.
func (e *Element) Detached() bool { return e.detached.Load() }

// Modules returns the symbol width in modules, quiet zone included when the
// margin is enabled.
func (e *Element) Modules() int {
	return len(e.bitmap())
}

func (e *Element) bitmap() [][]bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.code.Bitmap()
}

// PNG encodes the element as a PNG of Params.Size pixels. Payloads too dense
// for the requested size produce a larger image rather than an unreadable one.
func (e *Element) PNG() ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: element is nil", ErrorFailedToGenerateQRCode)
	}
	if e.Detached() {
		return nil, ErrDetached
	}
	e.mu.Lock()
	png, err := e.code.PNG(e.params.Size)
	e.mu.Unlock()
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	return png, nil
}

// SVG encodes the element as a standalone SVG document.
func (e *Element) SVG() ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: element is nil", ErrorFailedToGenerateQRCode)
	}
	if e.Detached() {
		return nil, ErrDetached
	}
	return writeSVG(e.bitmap(), e.params), nil
}

// DataURI returns the PNG as a data URI for embedding into an <img> tag.
func (e *Element) DataURI() (string, error) {
	png, err := e.PNG()
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
