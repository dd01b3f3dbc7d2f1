package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/qrshare/pkg/file"
)

// attachmentResponse writes in-memory data with download or inline disposition.
type attachmentResponse struct {
	data        []byte
	filename    string
	contentType string
	inline      bool
}

func (a attachmentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	contentType := a.contentType
	if contentType == "" {
		contentType = file.DetectContentType(a.data, a.filename)
	}

	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(a.data)))
	h.Set("X-Content-Type-Options", "nosniff")
	if a.inline {
		h.Set("Cache-Control", "no-store")
	}
	if a.filename != "" {
		disposition := "attachment"
		if a.inline {
			disposition = "inline"
		}
		h.Set("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, headerSafe(a.filename)))
	}

	w.WriteHeader(http.StatusOK)
	_, err := w.Write(a.data)
	return err
}

// headerSafe prevents header injection through the filename.
func headerSafe(name string) string {
	name = file.SanitizeFilename(name)
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ReplaceAll(name, "\r", "")
	return strings.ReplaceAll(name, "\"", "'")
}

// Attachment creates a response for downloading in-memory data as a file.
// If contentType is empty, it is detected from the data and filename.
//
// Example:
//
//	return handler.Attachment(dl.Data, dl.Filename, dl.ContentType)
func Attachment(data []byte, filename, contentType string) Response {
	return attachmentResponse{data: data, filename: filename, contentType: contentType}
}

// Inline serves in-memory data for display in the browser, e.g. an <img> source.
// The response is marked as not cacheable.
func Inline(data []byte, filename, contentType string) Response {
	return attachmentResponse{data: data, filename: filename, contentType: contentType, inline: true}
}
