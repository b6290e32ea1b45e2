package redis

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/redis"
)

type impl struct {
	redis redis.Service
	ttl   time.Duration
}

// New stores nonces for ttl, an unused nonce simply expires
func New(redis redis.Service, ttl time.Duration) domain.NonceRepo {
	return &impl{redis, ttl}
}

func nonceKey(address domain.Address) string {
	return keys.RedisKey(keys.PfxNonce, address.ToLowerStr())
}

func (im *impl) Store(c ctx.Ctx, address domain.Address, nonce string) error {
	if err := im.redis.Set(c, nonceKey(address), []byte(nonce), im.ttl); err != nil {
		c.WithField("err", err).Error("redis.Set failed")
		return err
	}
	return nil
}

func (im *impl) Take(c ctx.Ctx, address domain.Address) (string, error) {
	v, err := im.redis.ScriptDo(c, redis.GetAndDelete, nonceKey(address))
	if err == redis.ErrNotFound {
		return "", domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("redis.ScriptDo failed")
		return "", err
	}

	switch nonce := v.(type) {
	case []byte:
		return string(nonce), nil
	case string:
		return nonce, nil
	}
	return "", domain.ErrNotFound
}
