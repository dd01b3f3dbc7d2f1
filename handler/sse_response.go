package handler

import "net/http"

// StreamContext is the Context of a long-lived DataStar stream.
type StreamContext interface {
	Context
	// SendComponent patches one component into the page.
	SendComponent(component TemplComponent, opts ...TemplOption) error
}

type streamContext struct {
	Context
}

func (c streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	sse := c.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return sse.PatchElementTempl(component, opts...)
}

// SSEHandler runs for the lifetime of the stream; returning closes it.
type SSEHandler func(stream StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return ErrNotAcceptable
	}
	base := NewContext(w, r)
	if base.SSE() == nil {
		return ErrSSENotInitialized
	}
	return s.handler(streamContext{Context: base})
}

// SSE opens an event stream and hands it to h:
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//		for msg := range sub.Receive(stream) {
//			if err := stream.SendComponent(NotificationToast(msg.Data)); err != nil {
//				return err
//			}
//		}
//		return nil
//	})
func SSE(h SSEHandler) Response {
	return sseResponse{handler: h}
}
