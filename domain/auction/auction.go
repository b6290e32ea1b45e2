package auction

import (
	"math/big"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/custody"
)

const (
	// BpsScale is 100% in basis points
	BpsScale = 10000
	// MinBidIncreaseFloorBps is the lowest minimum bid increase a config may carry
	MinBidIncreaseFloorBps = 200
	// ExtensionWindow is how close to the deadline a bid has to land to push the deadline
	ExtensionWindow = 15 * time.Minute
)

type Phase string

const (
	PhaseInactive Phase = "inactive"
	PhaseActive   Phase = "active"
	PhaseExpired  Phase = "expired"
)

// Leader is either NoBid, holding the starting floor, or TopBid, holding a real bid
type Leader interface {
	// Amount is the floor for NoBid and the standing bid for TopBid
	Amount() *big.Int
	isLeader()
}

// NoBid means nobody has bid in this cycle. Floor is the lowest acceptable first bid and
// is never owed to anybody.
type NoBid struct {
	Floor *big.Int
}

func (l NoBid) Amount() *big.Int {
	return domain.CopyBig(l.Floor)
}

func (NoBid) isLeader() {}

// TopBid is the standing highest bid
type TopBid struct {
	Bidder domain.Address
	Bid    *big.Int
}

func (l TopBid) Amount() *big.Int {
	return domain.CopyBig(l.Bid)
}

func (TopBid) isLeader() {}

// MinimumBid is the lowest amount a bid must reach given the current leader. With a real
// leader the increase is scaled by bps and truncated, never rounded up.
func MinimumBid(leader Leader, bps int64) *big.Int {
	switch l := leader.(type) {
	case TopBid:
		min := new(big.Int).Mul(l.Amount(), big.NewInt(BpsScale+bps))
		return min.Quo(min, domain.Big10000)
	case NoBid:
		return l.Amount()
	}
	return new(big.Int)
}

type Config struct {
	MinBidIncreaseBps int64          `json:"minBidIncreaseBps" bson:"minBidIncreaseBps"`
	Beneficiary       domain.Address `json:"beneficiary" bson:"beneficiary"`
}

func ValidateBps(bps int64) error {
	if bps < MinBidIncreaseFloorBps {
		return domain.ErrInvalidConfig
	}
	return nil
}

// State is the live lifecycle record. A zero Deadline means no auction is running.
type State struct {
	Deadline time.Time
	Leader   Leader
}

// InactiveState is the state at construction and after every settle or cancel
func InactiveState() State {
	return State{Leader: NoBid{Floor: new(big.Int)}}
}

func (s State) Phase(now time.Time) Phase {
	switch {
	case s.Deadline.IsZero():
		return PhaseInactive
	case now.Before(s.Deadline):
		return PhaseActive
	default:
		return PhaseExpired
	}
}

// Record is what gets persisted for the single auction an engine runs
type Record struct {
	Round  string
	Config Config
	State  State
	// EventSeq is the Seq of the last event emitted
	EventSeq  int64
	UpdatedAt time.Time
}

func (r *Record) Clone() *Record {
	c := *r
	switch l := r.State.Leader.(type) {
	case TopBid:
		c.State.Leader = TopBid{Bidder: l.Bidder, Bid: l.Amount()}
	case NoBid:
		c.State.Leader = NoBid{Floor: l.Amount()}
	default:
		c.State.Leader = NoBid{Floor: new(big.Int)}
	}
	return &c
}

// Status is the read model served to clients
type Status struct {
	Round      string          `json:"round,omitempty"`
	Config     Config          `json:"config"`
	Phase      Phase           `json:"phase"`
	Deadline   *time.Time      `json:"deadline,omitempty"`
	TopBidder  *domain.Address `json:"topBidder,omitempty"`
	TopBid     *big.Int        `json:"-"`
	MinimumBid *big.Int        `json:"-"`
	Now        time.Time       `json:"now"`
}

type Usecase interface {
	// Init persists the first record from config, an existing record is left alone
	Init(c ctx.Ctx, config Config) error
	Configure(c ctx.Ctx, caller domain.Address, minBidIncreaseBps int64) error
	// SetBeneficiary replaces the beneficiary in any phase. An empty or zero address is
	// rejected with domain.ErrInvalidConfig.
	SetBeneficiary(c ctx.Ctx, caller, beneficiary domain.Address) error
	StartAuction(c ctx.Ctx, caller domain.Address, startingBid *big.Int, deadline time.Time) error
	// Bid spends amount from the ledger balance of bidder, funded by deposits and refunds.
	// A leader raising its own bid spends only the difference. An unfunded bid fails with
	// domain.ErrInsufficientFunds and changes nothing.
	Bid(c ctx.Ctx, bidder domain.Address, amount *big.Int) error
	CancelAuction(c ctx.Ctx, caller domain.Address) error
	SettleAuction(c ctx.Ctx, caller domain.Address) error
	WithdrawItem(c ctx.Ctx, caller domain.Address, item custody.Item, recipient domain.Address) error

	MinimumBid(c ctx.Ctx) (*big.Int, error)
	Status(c ctx.Ctx) (*Status, error)
	Events(c ctx.Ctx, offset, limit int) ([]*Event, error)
	RecentEvents(c ctx.Ctx, limit int) ([]*Event, error)
}

// Repo persists the single auction record
type Repo interface {
	// Get returns domain.ErrNotFound until the first Save
	Get(c ctx.Ctx) (*Record, error)
	Save(c ctx.Ctx, record *Record) error
}

// Locker serialises engine mutations across processes
type Locker interface {
	Lock(c ctx.Ctx) (unlock func(), err error)
}
