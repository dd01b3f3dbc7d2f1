// Package qrcode renders QR codes and keeps track of the most recent render.
//
// Encoding is delegated to github.com/skip2/go-qrcode. The package adds the
// pieces a form-driven generator needs on top of it: validated encoding
// parameters, an immutable rendered Element that can be serialized to PNG or
// SVG, and a Handle that always points at the current Element.
//
// # Architecture
//
// Params describes a render: payload, pixel size, colors, error-correction
// level and quiet-zone margin. Render validates the parameters and produces an
// Element. Elements never change after they are created, so any number of
// readers may serialize the same Element concurrently.
//
// A Handle is the single owner of the "current" Element. The renderer is the
// only writer (Apply), readers call Current at any time and get either the
// previous or the new Element, never a partially built one. Closing a Handle
// detaches its Element; serializing a detached Element fails with
// ErrDetached.
//
// # Usage
//
//	h := qrcode.NewHandle()
//
//	params := qrcode.DefaultParams("https://example.com")
//	params.Level = qrcode.LevelHigh
//	params.IncludeMargin = true
//
//	el, err := h.Apply(params)
//	if err != nil {
//		// handle error
//	}
//
//	png, err := el.PNG()
//	svg, err := h.Current().SVG()
//
// # Error Handling
//
// Validation failures are reported as ParamsError, a map of field name to
// cause, so callers can surface them per field. Every cause wraps one of the
// sentinel errors (ErrEmptyContent, ErrInvalidSize, ErrInvalidLevel,
// ErrInvalidColor) and can be matched with errors.Is.
package qrcode
