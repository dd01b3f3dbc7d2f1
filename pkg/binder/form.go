package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20 // 10 MB

// Form creates a binder for application/x-www-form-urlencoded and
// multipart/form-data bodies. Other content types yield ErrBinderNotApplicable.
//
// Supported struct tags:
//   - `form:"name"` - binds to form field "name"
//   - `form:"-"`    - skips the field
//
// Supported types:
//   - Basic types: string, int, int64, uint, uint64, float32, float64, bool
//   - Slices of basic types for multi-value fields
//   - Pointers for optional fields
//   - encoding.TextUnmarshaler implementations
//
// Example:
//
//	type ShareRequest struct {
//		Target    string `form:"target"`
//		Recipient string `form:"recipient"`
//	}
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		var values map[string][]string

		switch mt := mediaType(r); {
		case mt == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case strings.HasPrefix(mt, "multipart/form-data"):
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value

		case mt == "":
			return fmt.Errorf("%w: %w: expected form data", ErrBinderNotApplicable, ErrMissingContentType)

		default:
			return fmt.Errorf("%w: %w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrBinderNotApplicable, ErrUnsupportedMediaType, mt)
		}

		return bindFields(v, "form", fromValues(values), ErrInvalidForm)
	}
}
