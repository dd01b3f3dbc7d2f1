// Package export turns the currently rendered QR code into a file download or
// a share, and tells the user how it went.
//
// # Architecture
//
// A Pipeline is built from four collaborators, each optional:
//
//   - Saver performs the download side effect (MemorySaver, StorageSaver, MultiSaver).
//   - Sharer delivers the image to a named target (LinkSharer, EmailSharer).
//   - Notifier receives exactly one Notice per attempt.
//   - Encoder serializes an element into PNG or SVG; the defaults call the qrcode package.
//
// ExportAsImage and ShareImage read the element from their Source at call time
// and return immediately with an async.Future. Encoding and the side effect run
// on a background goroutine detached from the caller's cancellation. Two calls
// never share state, so rapid repeated exports complete independently.
//
// # Guarantees
//
// Every attempt resolves its future with a Result and a nil error. Failures,
// panics in collaborators included, are reported in Result.Err and classified
// with errors.Is:
//
//   - ErrSerialization: nothing rendered yet, element detached, or encoder failure
//   - ErrSaveFailed: the saver rejected a fully encoded download
//   - ErrShareUnsupported: no sharer for the requested target (Status is StatusUnsupported)
//   - ErrShareFailed: the sharer returned an error
//
// The saver only ever receives fully encoded bytes, so a serialization failure
// produces no file. A share without a registered target never falls back to a
// download.
//
// # Usage
//
//	pipeline := export.NewPipeline(
//	    export.WithSaver(export.NewStorageSaver(storage, "exports")),
//	    export.WithSharer(export.TargetLink, export.NewLinkSharer(storage, "shares")),
//	    export.WithNotifier(notifier),
//	)
//
//	res, _ := pipeline.ExportAsImage(ctx, handle, export.FormatPNG).Await()
//	// res.Filename == "qr-code.png", notice "Downloaded as PNG"
//
// With returns a copy of a pipeline with extra options, which is how per-request
// savers and per-session notifiers are attached without touching shared state.
package export
