// Package file persists encoded QR artifacts.
//
// Storage is implemented by LocalStorage, which writes under a base directory,
// and S3Storage, which talks to AWS S3 or any S3 compatible endpoint such as
// MinIO. Objects are passed as byte slices since exports are fully encoded
// before they are stored.
//
//	storage, err := file.NewLocalStorage("./data", "/files/")
//	if err != nil {
//		return err
//	}
//	info, err := storage.Save(ctx, file.Object{Name: "qr-code.png", Data: png}, "shares/")
//	if err != nil {
//		return err
//	}
//	link := storage.URL(info.RelativePath)
//
// A path ending in "/" names a directory and the sanitized object name is
// appended to it. Paths escaping the storage root fail with ErrInvalidPath.
//
// S3 errors are mapped onto the package sentinels (ErrFileNotFound,
// ErrBucketNotFound, ErrAccessDenied, ErrServiceUnavailable and
// ErrOperationTimeout) so callers can match them with errors.Is regardless of
// the backend.
package file
