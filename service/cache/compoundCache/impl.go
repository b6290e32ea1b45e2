package compoundcache

import (
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/cache"
)

type impl struct {
	layers []cache.Service
}

// NewCompoundCache reads layers front to back and backfills the faster layers on a hit
func NewCompoundCache(layers []cache.Service) cache.Service {
	return &impl{
		layers: layers,
	}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter cache.OneTimeGetter) error {
	return cache.GetByFunc(c, im, key, container, getter)
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	hitIdx := -1
	for idx, lyr := range im.layers {
		err := lyr.Get(c, key, container)
		if err == cache.ErrNotFound {
			continue
		} else if err != nil {
			return err
		}
		hitIdx = idx
		break
	}

	if hitIdx == -1 {
		return cache.ErrNotFound
	}

	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, container); err != nil {
			c.WithField("err", err).WithField("layer", idx).Warn("backfill failed")
		}
	}
	return nil
}

// Set writes every layer and reports the first failure
func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	var firstErr error
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	var firstErr error
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
