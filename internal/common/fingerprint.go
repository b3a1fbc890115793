package common

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint derives a deterministic content-addressed cache key from the
// given parts. Parts are length-prefix separated so distinct part boundaries
// never collide.
func Fingerprint(scope string, parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		var lenBuf [8]byte
		n := len(part)
		for i := 0; i < 8; i++ {
			lenBuf[i] = byte(n >> (8 * i))
		}
		h.Write(lenBuf[:])
		h.Write([]byte(part))
	}
	return "tm:" + scope + ":" + hex.EncodeToString(h.Sum(nil))
}
