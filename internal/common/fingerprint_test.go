package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	key := Fingerprint("emb", "some text")

	assert.True(t, strings.HasPrefix(key, "tm:emb:"))
	assert.Len(t, strings.TrimPrefix(key, "tm:emb:"), 64)

	// Deterministic
	assert.Equal(t, key, Fingerprint("emb", "some text"))

	// Content sensitive
	assert.NotEqual(t, key, Fingerprint("emb", "other text"))

	// Scope sensitive
	assert.NotEqual(t, key, Fingerprint("match", "some text"))

	// Part boundaries never collide
	assert.NotEqual(t, Fingerprint("emb", "ab", "c"), Fingerprint("emb", "a", "bc"))
}
