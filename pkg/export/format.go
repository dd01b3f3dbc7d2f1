package export

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/qrshare/pkg/qrcode"
)

// BaseFilename is the stem of every exported file.
const BaseFilename = "qr-code"

// Format is an export image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case, with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

func (f Format) Valid() bool {
	return f == FormatPNG || f == FormatSVG
}

func (f Format) Extension() string { return "." + string(f) }

// Label is the upper-case name shown to users, e.g. "PNG".
func (f Format) Label() string { return strings.ToUpper(string(f)) }

func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// Filename returns "qr-code.<ext>".
func Filename(f Format) string { return BaseFilename + f.Extension() }

// Encoder serializes an element into a single format.
type Encoder func(el *qrcode.Element) ([]byte, error)

func defaultEncoders() map[Format]Encoder {
	return map[Format]Encoder{
		FormatPNG: (*qrcode.Element).PNG,
		FormatSVG: (*qrcode.Element).SVG,
	}
}
