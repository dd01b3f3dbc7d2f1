// Package cache holds per-session state in memory with a hard upper bound.
//
// LRUCache is used for live QR handles and notification broadcasters: once
// the configured number of sessions is reached the least recently touched one
// is dropped and handed to the evict callback, which releases its resources.
//
//	handles := cache.NewLRUCache[string, *qrcode.Handle](1000)
//	handles.SetEvictCallback(func(_ string, h *qrcode.Handle) { h.Close() })
//	h, _ := handles.GetOrCreate(sessionID, newHandle)
package cache
