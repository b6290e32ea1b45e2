package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxNonce is used for prefixing sign-in nonce redis key
	PfxNonce = "nonce"
	// PfxAuctionLock is used for prefixing the engine's distributed lock
	PfxAuctionLock = "auctionLock"
	// PfxAuctionFeed is used for prefixing the recent auction events list
	PfxAuctionFeed = "auctionFeed"
	// PfxCustodyOwner is used for prefixing cached on-chain ownership lookups
	PfxCustodyOwner = "custodyOwner"
	// PfxEns is used for prefixing ens lookups
	PfxEns = "ensPfx"
	// PfxHttpCache is used for prefixing cached http responses
	PfxHttpCache = "httpCacheMiddleware"
)

// CustomKey is used to join the customized key by components with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by components
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the prefix of a key for metric tagging. Keys with three or more
// components are tagged by their first two.
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	switch {
	case len(s) > 2:
		return strings.Join(s[:2], ":")
	case len(s) > 1:
		return s[0]
	}
	return ""
}
