package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKeyPriority(t *testing.T) {
	assert.Equal(t, "a@x.com", ResolveKey("a@x.com", "alt@x.com", "@ana", "Ana"))
	assert.Equal(t, "alt@x.com", ResolveKey("", "alt@x.com", "@ana", "Ana"))
	assert.Equal(t, "@ana", ResolveKey("", "", "@ana", "Ana"))
	assert.Equal(t, "ana", ResolveKey("", "", "", "Ana"))
	assert.Equal(t, "", ResolveKey("", "", "", ""))
	assert.Equal(t, "", ResolveKey())
}

func TestResolveKeyNormalizes(t *testing.T) {
	// Case and padding variants of the same email resolve to one key.
	assert.Equal(t, ResolveKey("A@x.com"), ResolveKey("a@x.com "))
	assert.Equal(t, "a@x.com", ResolveKey("  A@X.COM  "))
	// Whitespace-only candidates are skipped, not lowercased to a key.
	assert.Equal(t, "@ana", ResolveKey("   ", "", "@Ana"))
}

func TestResolveKeyIdempotent(t *testing.T) {
	key := ResolveKey("A@x.com", "", "", "Ana")
	assert.Equal(t, key, ResolveKey(key))
}

func TestDisplayNameFor(t *testing.T) {
	assert.Equal(t, "Ana", DisplayNameFor("Ana", "a@x.com", "alt@x.com"))
	assert.Equal(t, "a@x.com", DisplayNameFor("", "a@x.com", "alt@x.com"))
	assert.Equal(t, "alt@x.com", DisplayNameFor("  ", "", "alt@x.com"))
	assert.Equal(t, "", DisplayNameFor("", "", ""))
}
