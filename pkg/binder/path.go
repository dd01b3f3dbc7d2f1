package binder

import (
	"fmt"
	"net/http"
)

// Path binds path parameters through extractor, which has the signature of
// chi.URLParam. Fields are matched by their `path` tag and empty parameters
// are left untouched.
//
//	type ExportRequest struct {
//		Format string `path:"format"`
//	}
//
//	r.Get("/export/{format}", handler.Wrap(export,
//		handler.WithBinders[handler.Context, ExportRequest](binder.Path(chi.URLParam)),
//	))
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}
		return bindFields(v, "path", func(name string) []string {
			if s := extractor(r, name); s != "" {
				return []string{s}
			}
			return nil
		}, ErrInvalidPath)
	}
}
