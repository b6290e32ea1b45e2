package redis

import (
	"encoding/json"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/redis"
)

const defaultFeedSize = 100

// Feed is a capped list of the newest events, it serves as both a Notifier and an auction.Feed
type Feed struct {
	redis redis.Service
	key   string
	size  int
}

func NewFeed(redis redis.Service, size int) *Feed {
	if size <= 0 {
		size = defaultFeedSize
	}
	return &Feed{
		redis: redis,
		key:   keys.RedisKey(keys.PfxAuctionFeed, "engine"),
		size:  size,
	}
}

func (f *Feed) Notify(c ctx.Ctx, event *auction.Event) error {
	val, err := json.Marshal(event)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return err
	}
	if err := f.redis.LPush(c, f.key, val); err != nil {
		return err
	}
	return f.redis.LTrim(c, f.key, 0, f.size-1)
}

func (f *Feed) Recent(c ctx.Ctx, limit int) ([]*auction.Event, error) {
	if limit <= 0 || limit > f.size {
		limit = f.size
	}

	vals, err := f.redis.LRange(c, f.key, 0, limit)
	if err == redis.ErrNotFound {
		return []*auction.Event{}, nil
	} else if err != nil {
		return nil, err
	}

	res := make([]*auction.Event, 0, len(vals))
	for _, v := range vals {
		e := &auction.Event{}
		if err := json.Unmarshal(v, e); err != nil {
			c.WithField("err", err).Warn("skip undecodable feed entry")
			continue
		}
		res = append(res, e)
	}
	return res, nil
}
