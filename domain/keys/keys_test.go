package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "nonce:0xabc", RedisKey(PfxNonce, "0xabc"))
	assert.Equal(t, "a|b|c", CustomKey("|", "a", "b", "c"))
}

func TestGetPrefix(t *testing.T) {
	tests := []struct {
		key string
		exp string
	}{
		{"", ""},
		{"plain", ""},
		{"nonce:0xabc", "nonce"},
		{"auctionFeed:engine:recent", "auctionFeed:engine"},
		{"a:b:c:d", "a:b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.exp, GetPrefix(tt.key), tt.key)
	}
}
