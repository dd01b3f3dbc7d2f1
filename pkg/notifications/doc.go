// Package notifications stores and streams the short-lived toasts shown to a
// client session after an export or share attempt.
//
// The package has three layers:
//
//   - Storage keeps a capped, expiring history per session (MemoryStorage or
//     RedisStorage).
//   - Deliverer pushes new notifications to live listeners (BroadcastDeliverer).
//   - Manager stores first, then delivers, and adapts itself to export.Notifier.
//
// # Basic Usage
//
//	storage := notifications.NewMemoryStorage()
//	deliverer := notifications.NewBroadcastDeliverer(16)
//	manager := notifications.NewManager(storage, deliverer, notifications.WithTTL(5*time.Minute))
//
//	pipeline := basePipeline.With(export.WithNotifier(manager.Notifier(sessionID)))
//	res, _ := pipeline.ExportAsImage(ctx, handle, export.FormatPNG).Await(ctx)
//
// # Streaming
//
//	sub, err := manager.Subscribe(r.Context(), sessionID)
//	if err != nil {
//	    // no real-time deliverer configured
//	}
//	defer sub.Close()
//	for msg := range sub.Receive(r.Context()) {
//	    render(msg.Data)
//	}
//
// Slow stream consumers are dropped by the broadcaster; clients reconnect and
// fetch the missed toasts with Manager.List.
package notifications
