// Package binder binds HTTP request data to Go structs.
//
// Each binder is a func(r *http.Request, v any) error that reads one source:
//
//   - JSON(): JSON request bodies (strict, size-limited)
//   - Form(): urlencoded and multipart form values
//   - Query(): URL query parameters
//   - Path(extractor): path parameters, e.g. Path(chi.URLParam)
//
// Body binders return ErrBinderNotApplicable for content types they do not
// handle, which lets handler.Wrap try JSON and Form in turn:
//
//	type ParamsRequest struct {
//	    Payload string       `json:"payload" form:"payload"`
//	    Size    int          `json:"size" form:"size"`
//	    Fg      qrcode.Color `json:"foreground" form:"foreground"`
//	}
//
//	r.Put("/params", handler.Wrap(update,
//	    handler.WithBinders[handler.Context, ParamsRequest](binder.JSON(), binder.Form()),
//	))
//
// Field types implementing encoding.TextUnmarshaler are parsed with it by the
// form, query and path binders.
//
// # Error Handling
//
//   - ErrUnsupportedMediaType: Content type doesn't match expected type
//   - ErrMissingContentType: Missing Content-Type header
//   - ErrInvalidJSON, ErrInvalidForm, ErrInvalidQuery, ErrInvalidPath: malformed input
package binder
