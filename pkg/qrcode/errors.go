package qrcode

import "errors"

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrInvalidSize is returned when the pixel size is outside [MinSize, MaxSize].
	ErrInvalidSize = errors.New("size is out of range")
	// ErrInvalidLevel is returned for an unknown error-correction level.
	ErrInvalidLevel = errors.New("unknown error correction level")
	// ErrInvalidColor is returned when a color is not a #rgb or #rrggbb hex value.
	ErrInvalidColor = errors.New("invalid color")
	// ErrorFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrorFailedToGenerateQRCode = errors.New("failed to generate QR code")
	// ErrDetached is returned when serializing an element whose handle was closed.
	ErrDetached = errors.New("element is detached")
	// ErrHandleClosed is returned by Apply after Close.
	ErrHandleClosed = errors.New("handle is closed")
)
