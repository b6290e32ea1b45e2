package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/goauction/base/ctx"
)

// Forever means the key never expires
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil
	// ErrNoTTL is returned by TTL when the key exists without an expiry
	ErrNoTTL = errors.New("key has no associated expire")
	// ErrNoPool is returned while no pool is available for the command
	ErrNoPool = errors.New("no redis pool available")
)

// Service is the subset of redis commands the engine relies on
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX reports whether the key was set
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error)
	Del(context ctx.Ctx, ks ...string) (int, error)
	// TTL returns the remaining seconds, ErrNotFound or ErrNoTTL
	TTL(context ctx.Ctx, key string) (int, error)

	LPush(context ctx.Ctx, key string, val []byte) error
	LTrim(context ctx.Ctx, key string, start, end int) error
	LRange(context ctx.Ctx, key string, offset, count int) ([][]byte, error)

	ScriptDo(context ctx.Ctx, hdl *ScriptHdl, keysAndArgs ...interface{}) (interface{}, error)
}
