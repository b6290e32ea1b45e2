package custody

import (
	"fmt"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

// Item identifies one ERC-721 token
type Item struct {
	ChainId  domain.ChainId `json:"chainId" bson:"chainId" validate:"required"`
	Contract domain.Address `json:"contract" bson:"contract" validate:"required,address"`
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId" validate:"required,uint256"`
}

func (i Item) Normalize() Item {
	i.Contract = i.Contract.ToLower()
	return i
}

func (i Item) String() string {
	return fmt.Sprintf("%d/%s/%s", i.ChainId, i.Contract.ToLower(), i.TokenId)
}

type Holding struct {
	Item       `bson:",inline"`
	Depositor  domain.Address `json:"depositor" bson:"depositor"`
	ReceivedAt time.Time      `json:"receivedAt" bson:"receivedAt"`
}

type Repo interface {
	// Insert returns domain.ErrConflict when the item is already held
	Insert(c ctx.Ctx, holding *Holding) error
	FindOne(c ctx.Ctx, item Item) (*Holding, error)
	FindAll(c ctx.Ctx) ([]*Holding, error)
	// Remove returns domain.ErrNotFound when the item is not held
	Remove(c ctx.Ctx, item Item) error
}

// OwnershipVerifier reads the current on-chain owner of an item
type OwnershipVerifier interface {
	OwnerOf(c ctx.Ctx, item Item) (domain.Address, error)
}

// Transferer moves an item out of the vault on chain
type Transferer interface {
	Transfer(c ctx.Ctx, item Item, to domain.Address) (domain.TxHash, error)
}

type Usecase interface {
	Receive(c ctx.Ctx, depositor domain.Address, item Item) error
	Release(c ctx.Ctx, item Item, recipient domain.Address) error
	Holdings(c ctx.Ctx) ([]*Holding, error)
}
