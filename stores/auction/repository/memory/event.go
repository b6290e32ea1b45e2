package memory

import (
	"sort"
	"sync"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

type eventRepo struct {
	mu     sync.RWMutex
	events []*auction.Event
	ids    map[string]bool
}

// NewEventRepo keeps the journal in process ordered by Seq, FindAll pages newest first like
// the mongo journal
func NewEventRepo() auction.EventRepo {
	return &eventRepo{ids: map[string]bool{}}
}

func (r *eventRepo) Insert(c ctx.Ctx, event *auction.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ids[event.ID] {
		return domain.ErrConflict
	}
	r.ids[event.ID] = true
	e := *event
	i := sort.Search(len(r.events), func(i int) bool { return r.events[i].Seq > e.Seq })
	r.events = append(r.events, nil)
	copy(r.events[i+1:], r.events[i:])
	r.events[i] = &e
	return nil
}

func (r *eventRepo) FindAll(c ctx.Ctx, offset, limit int) ([]*auction.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := []*auction.Event{}
	for i := len(r.events) - 1 - offset; i >= 0 && len(res) < limit; i-- {
		e := *r.events[i]
		res = append(res, &e)
	}
	return res, nil
}
