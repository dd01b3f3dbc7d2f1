package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Shared is the body of a share email: an optional title and text followed by
// a note that the image is attached.
func Shared(title, text, filename string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div style="font-family:sans-serif;font-size:14px;color:#111">`); err != nil {
			return err
		}
		if title != "" {
			if _, err := io.WriteString(w, "<h1 style=\"font-size:18px\">"+templ.EscapeString(title)+"</h1>"); err != nil {
				return err
			}
		}
		if text != "" {
			if _, err := io.WriteString(w, "<p>"+templ.EscapeString(text)+"</p>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "<p>The QR code is attached as <b>"+templ.EscapeString(filename)+"</b>.</p></div>")
		return err
	})
}
