package file_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/qrshare/pkg/file"
)

// pngMagic is the PNG signature followed by an IHDR chunk header, enough for
// content sniffing.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectContentType(t *testing.T) {
	t.Parallel()

	t.Run("sniffs PNG regardless of extension", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "image/png", file.DetectContentType(pngMagic, "renamed.txt"))
	})

	t.Run("uses extension for SVG", func(t *testing.T) {
		t.Parallel()
		svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
		assert.Equal(t, "image/svg+xml", file.DetectContentType(svg, "qr-code.svg"))
	})

	t.Run("falls back to sniffed type", func(t *testing.T) {
		t.Parallel()
		got := file.DetectContentType([]byte("plain"), "noext")
		assert.Equal(t, "text/plain; charset=utf-8", got)
	})
}

func TestHash(t *testing.T) {
	t.Parallel()

	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", file.Hash([]byte("hello")))
	assert.Equal(t, file.Hash(pngMagic), file.Hash(append([]byte(nil), pngMagic...)))
	assert.Len(t, file.Hash(nil), 64)
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"qr-code.png":                "qr-code.png",
		"../../exports/qr.svg":       "qr.svg",
		`C:\Users\me\Desktop\qr.png`: "qr.png",
		"shares\\2024/qr-code.png":   "qr-code.png",
		"qr\x00code.png":             "qrcode.png",
		"":                           "unnamed",
		".":                          "unnamed",
		"..":                         "unnamed",
		"/":                          "unnamed",
	}
	for in, want := range tests {
		assert.Equal(t, want, file.SanitizeFilename(in), "input %q", in)
	}
}
