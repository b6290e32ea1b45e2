package redisclient

import (
	"context"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
	idleTimeout  = 240 * time.Second

	dialAttempts = 4
)

// Config mirrors the redis_cache config block
type Config struct {
	URI      string
	Password string
	// PoolMultiplier sizes the pool per cpu, zero keeps the fixed default
	PoolMultiplier float64
	// Retry redials a few times before giving up. Only unit tests turn it off.
	Retry bool
}

func (cfg Config) poolSize() (maxIdle, maxActive int) {
	if cfg.PoolMultiplier <= 0 {
		return 200, 1024
	}
	maxActive = int(float64(runtime.NumCPU()) * cfg.PoolMultiplier)
	if maxActive < 1 {
		maxActive = 1
	}
	// a quarter of the pool may idle
	return (maxActive + 3) / 4, maxActive
}

// NewPool builds the pool without dialing
func NewPool(cfg Config) *redis.Pool {
	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}

	maxIdle, maxActive := cfg.poolSize()
	return &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: idleTimeout,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.URI, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// recycled within a second, skip the ping
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// MustConnectRedis panics when redis can't be reached
func MustConnectRedis(cfg Config) *redis.Pool {
	p, err := ConnectRedis(context.Background(), cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// ConnectRedis builds the pool and pings through it. Some containers fail their first
// dial on a fresh network, so with Retry set it redials with an exponential backoff.
func ConnectRedis(ctx context.Context, cfg Config) (*redis.Pool, error) {
	p := NewPool(cfg)

	attempts := 1
	if cfg.Retry {
		attempts = dialAttempts
	}
	err := backoff.NewExponential(time.Second, 4*time.Second).Retry(ctx, attempts, func() error {
		c := p.Get()
		defer c.Close()
		if _, err := c.Do("PING"); err != nil {
			log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Error("fail to ping Redis")
			return err
		}
		return nil
	})
	if err != nil {
		p.Close()
		return nil, err
	}

	log.Log().WithField("redisURI", cfg.URI).Info("redis connected")
	return p, nil
}
