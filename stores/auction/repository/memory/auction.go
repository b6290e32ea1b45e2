package memory

import (
	"sync"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

type impl struct {
	mu     sync.RWMutex
	record *auction.Record
}

func New() auction.Repo {
	return &impl{}
}

func (im *impl) Get(c ctx.Ctx) (*auction.Record, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	if im.record == nil {
		return nil, domain.ErrNotFound
	}
	return im.record.Clone(), nil
}

func (im *impl) Save(c ctx.Ctx, record *auction.Record) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.record = record.Clone()
	return nil
}
