package file

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid storage configuration")
	ErrInvalidPath   = errors.New("invalid path")
	ErrEmptyObject   = errors.New("object has no data")

	ErrFileNotFound      = errors.New("file not found")
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrIsDirectory       = errors.New("path is a directory")

	ErrWriteFailed = errors.New("failed to write file")

	// S3 failures
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("storage service unavailable")
	ErrOperationTimeout   = errors.New("storage operation timed out")
)
