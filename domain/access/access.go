package access

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

// Holder is the single privileged role. An empty Holder means the role was renounced.
type Holder struct {
	Holder    domain.Address `json:"holder" bson:"holder"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (h *Holder) IsHeld() bool {
	return h != nil && !h.Holder.IsEmpty()
}

type Repo interface {
	// Get returns domain.ErrNotFound before the role was ever assigned
	Get(c ctx.Ctx) (*Holder, error)
	Set(c ctx.Ctx, holder domain.Address) error
}

type Usecase interface {
	// Init assigns owner when the role was never assigned, a renounced role stays renounced
	Init(c ctx.Ctx, owner domain.Address) error
	CurrentHolder(c ctx.Ctx) (holder domain.Address, held bool, err error)
	// Authorize returns domain.ErrUnauthorized unless caller holds the role
	Authorize(c ctx.Ctx, caller domain.Address) error
	Transfer(c ctx.Ctx, caller, to domain.Address) error
	Renounce(c ctx.Ctx, caller domain.Address) error
	// Handover assigns the role without checking the caller, settlement uses it
	Handover(c ctx.Ctx, to domain.Address) error
}
