package redis

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/redis"
)

// ErrLockBusy is returned when another replica kept the engine lock for every attempt
var ErrLockBusy = errors.New("auction engine is locked by another process")

const lockAttempts = 20

type locker struct {
	redis   redis.Service
	key     string
	ttl     time.Duration
	newWait func() *backoff.Backoff
}

// NewLocker guards the engine with a redis key that expires after ttl in case the holder dies
func NewLocker(redis redis.Service, ttl time.Duration) auction.Locker {
	return &locker{
		redis: redis,
		key:   keys.RedisKey(keys.PfxAuctionLock, "engine"),
		ttl:   ttl,
		newWait: func() *backoff.Backoff {
			return backoff.NewLinear(20*time.Millisecond, 200*time.Millisecond)
		},
	}
}

func (l *locker) Lock(c ctx.Ctx) (func(), error) {
	token := uuid.NewString()

	acquired := false
	err := l.newWait().Retry(c, lockAttempts, func() error {
		ok, err := l.redis.SetNX(c, l.key, []byte(token), l.ttl)
		if err != nil {
			return err
		}
		if !ok {
			return ErrLockBusy
		}
		acquired = true
		return nil
	})
	if !acquired {
		if err == nil {
			err = ErrLockBusy
		}
		c.WithField("err", err).Warn("engine lock not acquired")
		return nil, err
	}

	return func() {
		// a lock that expired and was taken by someone else stays theirs
		if _, err := l.redis.ScriptDo(ctx.Detach(c), redis.CompareAndDelete, l.key, token); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"key": l.key,
			}).Error("engine unlock failed")
		}
	}, nil
}
