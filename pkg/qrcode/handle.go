package qrcode

import (
	"sync"
	"sync/atomic"
)

// Handle owns the current Element. Apply is the only writer; Current may be
// called from any goroutine and never blocks.
type Handle struct {
	current atomic.Pointer[Element]
	mu      sync.Mutex // serializes writers
	version uint64
	closed  bool
}

// NewHandle returns an empty handle. Current returns nil until the first
// successful Apply.
func NewHandle() *Handle {
	return &Handle{}
}

// Apply renders p and publishes the result as the current element.
// On failure the previous element stays current.
func (h *Handle) Apply(p Params) (*Element, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHandleClosed
	}

	el, err := Render(p)
	if err != nil {
		return nil, err
	}

	h.version++
	el.version = h.version
	h.current.Store(el)
	return el, nil
}

// Current returns the most recently applied element or nil.
func (h *Handle) Current() *Element {
	return h.current.Load()
}

// Close detaches the current element and rejects further renders.
// It is safe to call Close more than once.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	if el := h.current.Load(); el != nil {
		el.detached.Store(true)
	}
}
