package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/cache/provider"
)

var timeNow = time.Now

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive creates an in-process cache of size megabytes
func NewPrimitive(name string, size int) provider.Provider {
	return &impl{name, freecache.NewCache(size * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return nil, time.Duration(0), err
	}

	// expireAt is a unix timestamp, zero for entries without expiry
	if expireAt == 0 {
		return val, time.Duration(0), nil
	}
	ttl := time.Unix(int64(expireAt), 0).Sub(timeNow())
	if ttl < 0 {
		ttl = 0
	}
	return val, ttl, nil
}

// Set silently skips values freecache refuses as too large, the next layer still holds them
func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	err := im.cache.Set([]byte(key), value, int(ttl.Seconds()))
	if err == freecache.ErrLargeEntry || err == freecache.ErrLargeKey {
		c.WithField("key", key).WithField("size", len(value)).Debug("skip large entry")
		return nil
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
