package auction

import (
	"math/big"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/ptr"
	"github.com/x-xyz/goauction/domain"
)

type EventType string

const (
	EventAuctionStarted   EventType = "AuctionStarted"
	EventAuctionCancelled EventType = "AuctionCancelled"
	EventAuctionSettled   EventType = "AuctionSettled"
	EventNewTopBid        EventType = "NewTopBid"
	EventAuctionExtended  EventType = "AuctionExtended"
)

// Event is a notification emitted by a committed engine operation. Unused fields are empty.
type Event struct {
	ID          string         `json:"id" bson:"_id"`
	Round       string         `json:"round" bson:"round"`
	Type        EventType      `json:"type" bson:"type"`
	Bidder      domain.Address `json:"bidder,omitempty" bson:"bidder,omitempty"`
	Beneficiary domain.Address `json:"beneficiary,omitempty" bson:"beneficiary,omitempty"`
	Amount      string         `json:"amount,omitempty" bson:"amount,omitempty"`
	Deadline    *time.Time     `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Timestamp   time.Time      `json:"timestamp" bson:"timestamp"`
	// Seq orders events across every operation, events of one operation share a timestamp
	Seq int64 `json:"seq" bson:"seq"`
}

func NewAuctionStarted(startingBid *big.Int, deadline time.Time) *Event {
	return &Event{Type: EventAuctionStarted, Amount: startingBid.String(), Deadline: ptr.Time(deadline)}
}

func NewAuctionCancelled() *Event {
	return &Event{Type: EventAuctionCancelled}
}

func NewAuctionSettled(winner, beneficiary domain.Address, topBid *big.Int) *Event {
	return &Event{Type: EventAuctionSettled, Bidder: winner, Beneficiary: beneficiary, Amount: topBid.String()}
}

func NewTopBidEvent(bidder domain.Address, bid *big.Int) *Event {
	return &Event{Type: EventNewTopBid, Bidder: bidder, Amount: bid.String()}
}

func NewAuctionExtended(deadline time.Time) *Event {
	return &Event{Type: EventAuctionExtended, Deadline: ptr.Time(deadline)}
}

// Notifier receives committed events, errors are logged by the caller and never undo the operation
type Notifier interface {
	Notify(c ctx.Ctx, event *Event) error
}

// EventRepo is the durable event journal
type EventRepo interface {
	Insert(c ctx.Ctx, event *Event) error
	FindAll(c ctx.Ctx, offset, limit int) ([]*Event, error)
}

// Feed serves the most recent events without touching the journal
type Feed interface {
	Recent(c ctx.Ctx, limit int) ([]*Event, error)
}
