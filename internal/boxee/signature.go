// Package boxee speaks the Boxee box control API: the shared-key
// signature used during discovery and the xbmcHttp command endpoint.
package boxee

import (
	"crypto/md5"
	"encoding/hex"
)

// Signature returns the hex-encoded MD5 digest of challenge followed by secret.
// The box only answers discovery requests carrying this value.
func Signature(challenge, secret string) string {
	sum := md5.Sum([]byte(challenge + secret))
	return hex.EncodeToString(sum[:])
}
