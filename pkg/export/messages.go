package export

// User-facing notice texts.
const (
	MsgDownloadFailed   = "Failed to download image"
	MsgShared           = "Shared successfully"
	MsgShareUnsupported = "Sharing is not supported"
	MsgShareFailed      = "Failed to share image"
)

// MsgDownloaded returns "Downloaded as PNG" or "Downloaded as SVG".
func MsgDownloaded(f Format) string { return "Downloaded as " + f.Label() }
