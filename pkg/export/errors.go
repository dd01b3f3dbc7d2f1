package export

import "errors"

var (
	ErrSerialization    = errors.New("export: failed to serialize image")
	ErrShareUnsupported = errors.New("export: sharing is not supported")
	ErrShareFailed      = errors.New("export: share failed")
	ErrSaveFailed       = errors.New("export: save failed")

	ErrUnknownFormat     = errors.New("export: unknown image format")
	ErrNoElement         = errors.New("export: nothing has been rendered yet")
	ErrRecipientRequired = errors.New("export: recipient is required")
)
