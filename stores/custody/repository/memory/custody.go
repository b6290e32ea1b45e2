package memory

import (
	"sort"
	"sync"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/custody"
)

type impl struct {
	mu       sync.RWMutex
	holdings map[string]custody.Holding
}

func New() custody.Repo {
	return &impl{holdings: map[string]custody.Holding{}}
}

func (im *impl) Insert(c ctx.Ctx, holding *custody.Holding) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	key := holding.Item.String()
	if _, ok := im.holdings[key]; ok {
		return domain.ErrConflict
	}
	h := *holding
	h.Item = h.Item.Normalize()
	im.holdings[key] = h
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, item custody.Item) (*custody.Holding, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	h, ok := im.holdings[item.String()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &h, nil
}

func (im *impl) FindAll(c ctx.Ctx) ([]*custody.Holding, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	res := make([]*custody.Holding, 0, len(im.holdings))
	for _, h := range im.holdings {
		h := h
		res = append(res, &h)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ReceivedAt.Before(res[j].ReceivedAt)
	})
	return res, nil
}

func (im *impl) Remove(c ctx.Ctx, item custody.Item) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	key := item.String()
	if _, ok := im.holdings[key]; !ok {
		return domain.ErrNotFound
	}
	delete(im.holdings, key)
	return nil
}
