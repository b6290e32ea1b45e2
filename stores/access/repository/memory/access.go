package memory

import (
	"sync"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/access"
)

type impl struct {
	mu     sync.RWMutex
	holder *access.Holder
}

// New keeps the holder in process, for tests and single node dev setups
func New() access.Repo {
	return &impl{}
}

func (im *impl) Get(c ctx.Ctx) (*access.Holder, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	if im.holder == nil {
		return nil, domain.ErrNotFound
	}
	h := *im.holder
	return &h, nil
}

func (im *impl) Set(c ctx.Ctx, holder domain.Address) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.holder = &access.Holder{Holder: holder.ToLower(), UpdatedAt: time.Now()}
	return nil
}
