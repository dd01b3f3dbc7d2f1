// Package studio is the HTTP surface of the QR code workspace.
//
// Every client gets a session, identified by a signed qrshare_session cookie,
// and a workspace holding the currently rendered QR code. Parameter edits
// re-render synchronously and swap the workspace's element; downloads and
// shares run through an export.Pipeline that reads the element current at
// request time and reports exactly one notification per attempt.
//
// Routes (relative to the mount point):
//
//	GET    /params                 current parameters and version (?preview=true embeds a data URI)
//	PUT    /params                 partial edit, JSON or form body; 422 on invalid parameters
//	GET    /preview.{png|svg}      inline image
//	GET    /export/{png|svg}       attachment download (POST accepted too)
//	POST   /share                  share through a configured target
//	GET    /share/targets          available share targets
//	GET    /notifications          recent notifications of the session
//	DELETE /notifications          clear them
//	GET    /notifications/stream   Datastar SSE stream of toasts
//
// Workspaces live in an LRU registry bounded by Config.MaxSessions. An evicted
// workspace closes its handle, so an export still holding the old element
// fails with a detached-element error.
//
// Example:
//
//	svc := studio.NewService(cfg, pipeline, notices, cookies,
//		studio.WithLogger(log),
//		studio.WithArchive(export.NewStorageSaver(storage, "archive")),
//	)
//	defer svc.Close()
//
//	r.Mount("/", svc.Handle())
package studio
