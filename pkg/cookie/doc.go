// Package cookie writes and reads HTTP cookies with shared attributes and
// HMAC-SHA256 signatures.
//
// A signed value is stored as base64(value) + "|" + base64(mac). The first
// configured secret signs new cookies and every secret verifies, which lets
// secrets rotate without dropping sessions. Secrets shorter than 32
// characters are rejected.
//
//	id, err := man.GetSigned(r, "qrshare_session")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//	    man.SetSigned(w, "qrshare_session", uuid.NewString(), cookie.WithMaxAge(86400))
//	}
package cookie
