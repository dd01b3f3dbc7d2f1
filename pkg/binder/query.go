package binder

import "net/http"

// Query binds URL query parameters using `query` struct tags. Repeated and
// comma separated parameters fill slices.
//
//	type ExportRequest struct {
//		Formats []string `query:"format"`
//		Archive bool     `query:"zip"`
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindFields(v, "query", fromValues(r.URL.Query()), ErrInvalidQuery)
	}
}
