package usecase

import (
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/base/ptr"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/access"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/custody"
	"github.com/x-xyz/goauction/domain/ledger"
)

// AuctionUseCaseCfg wires the engine. Locker, Feed and Notifier are optional.
type AuctionUseCaseCfg struct {
	Repo       auction.Repo
	Events     auction.EventRepo
	Feed       auction.Feed
	Notifier   auction.Notifier
	Locker     auction.Locker
	Access     access.Usecase
	Ledger     ledger.Usecase
	Custody    custody.Usecase
	Transactor domain.Transactor
}

// effect runs after the record is saved, in the same transaction
type effect func(c ctx.Ctx) error

type impl struct {
	mu sync.Mutex

	repo     auction.Repo
	events   auction.EventRepo
	feed     auction.Feed
	notifier auction.Notifier
	locker   auction.Locker
	access   access.Usecase
	ledger   ledger.Usecase
	custody  custody.Usecase
	tx       domain.Transactor

	met   metrics.Service
	now   func() time.Time
	newId func() string
}

func New(cfg *AuctionUseCaseCfg) auction.Usecase {
	return &impl{
		repo:     cfg.Repo,
		events:   cfg.Events,
		feed:     cfg.Feed,
		notifier: cfg.Notifier,
		locker:   cfg.Locker,
		access:   cfg.Access,
		ledger:   cfg.Ledger,
		custody:  cfg.Custody,
		tx:       cfg.Transactor,
		met:      metrics.New("auction"),
		now:      time.Now,
		newId:    uuid.NewString,
	}
}

func newRecord(config auction.Config) *auction.Record {
	return &auction.Record{Config: config, State: auction.InactiveState()}
}

func (im *impl) Init(c ctx.Ctx, config auction.Config) error {
	if err := auction.ValidateBps(config.MinBidIncreaseBps); err != nil {
		return err
	}
	if config.Beneficiary.IsEmpty() {
		return domain.ErrInvalidConfig
	}

	return im.locked(c, func(c ctx.Ctx) error {
		if _, err := im.repo.Get(c); err == nil {
			return nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			c.WithField("err", err).Error("repo.Get failed")
			return err
		}

		rec := newRecord(config)
		rec.UpdatedAt = im.now()
		if err := im.repo.Save(c, rec); err != nil {
			c.WithField("err", err).Error("repo.Save failed")
			return err
		}
		c.WithFields(log.Fields{
			"minBidIncreaseBps": config.MinBidIncreaseBps,
			"beneficiary":       config.Beneficiary,
		}).Info("auction initialised")
		return nil
	})
}

func (im *impl) Configure(c ctx.Ctx, caller domain.Address, minBidIncreaseBps int64) error {
	return im.mutate(c, "configure", func(c ctx.Ctx, now time.Time, rec *auction.Record) ([]*auction.Event, effect, error) {
		if err := im.access.Authorize(c, caller); err != nil {
			return nil, nil, err
		}
		if rec.State.Phase(now) != auction.PhaseInactive {
			return nil, nil, domain.ErrWrongPhase
		}
		if err := auction.ValidateBps(minBidIncreaseBps); err != nil {
			return nil, nil, err
		}
		rec.Config.MinBidIncreaseBps = minBidIncreaseBps
		return nil, nil, nil
	})
}

func (im *impl) SetBeneficiary(c ctx.Ctx, caller, beneficiary domain.Address) error {
	return im.mutate(c, "setBeneficiary", func(c ctx.Ctx, now time.Time, rec *auction.Record) ([]*auction.Event, effect, error) {
		if err := im.access.Authorize(c, caller); err != nil {
			return nil, nil, err
		}
		if beneficiary.IsEmpty() {
			return nil, nil, domain.ErrInvalidConfig
		}
		rec.Config.Beneficiary = beneficiary.ToLower()
		return nil, nil, nil
	})
}

func (im *impl) StartAuction(c ctx.Ctx, caller domain.Address, startingBid *big.Int, deadline time.Time) error {
	return im.mutate(c, "start", func(c ctx.Ctx, now time.Time, rec *auction.Record) ([]*auction.Event, effect, error) {
		if err := im.access.Authorize(c, caller); err != nil {
			return nil, nil, err
		}
		if rec.State.Phase(now) != auction.PhaseInactive {
			return nil, nil, domain.ErrWrongPhase
		}
		if startingBid == nil || startingBid.Sign() < 0 {
			return nil, nil, domain.ErrInvalidConfig
		}
		if !deadline.After(now) {
			return nil, nil, domain.ErrDeadlineInPast
		}

		rec.Round = im.newId()
		rec.State = auction.State{
			Deadline: deadline,
			Leader:   auction.NoBid{Floor: domain.CopyBig(startingBid)},
		}
		return []*auction.Event{auction.NewAuctionStarted(startingBid, deadline)}, nil, nil
	})
}

func (im *impl) Bid(c ctx.Ctx, bidder domain.Address, amount *big.Int) error {
	if bidder.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if amount == nil {
		return domain.ErrBadParamInput
	}

	return im.mutate(c, "bid", func(c ctx.Ctx, now time.Time, rec *auction.Record) ([]*auction.Event, effect, error) {
		if rec.State.Phase(now) != auction.PhaseActive {
			return nil, nil, domain.ErrWrongPhase
		}

		prev := rec.State.Leader
		min := auction.MinimumBid(prev, rec.Config.MinBidIncreaseBps)
		if amount.Cmp(min) < 0 {
			if _, ok := prev.(auction.TopBid); ok {
				return nil, nil, xerrors.Errorf("bid %s below %s: %w", amount, min, domain.ErrBelowMinimumBid)
			}
			return nil, nil, xerrors.Errorf("bid %s below %s: %w", amount, min, domain.ErrBelowStartingBid)
		}

		spend, refund := domain.CopyBig(amount), im.refund(prev)
		if top, ok := prev.(auction.TopBid); ok && top.Bidder.Equals(bidder) {
			spend.Sub(spend, top.Amount())
			refund = nil
		}
		if err := im.funded(c, bidder, spend); err != nil {
			return nil, nil, err
		}

		rec.State.Leader = auction.TopBid{Bidder: bidder.ToLower(), Bid: domain.CopyBig(amount)}
		events := []*auction.Event{auction.NewTopBidEvent(bidder.ToLower(), amount)}
		if rec.State.Deadline.Sub(now) < auction.ExtensionWindow {
			rec.State.Deadline = now.Add(auction.ExtensionWindow)
			events = append(events, auction.NewAuctionExtended(rec.State.Deadline))
		}

		// the debit goes first, a store without transactions has nothing to undo when it fails
		return events, func(c ctx.Ctx) error {
			if err := im.ledger.Debit(c, bidder.ToLower(), spend); err != nil {
				return err
			}
			if refund == nil {
				return nil
			}
			return refund(c)
		}, nil
	})
}

// funded rejects a bid before anything changes when the balance of bidder can not cover spend
func (im *impl) funded(c ctx.Ctx, bidder domain.Address, spend *big.Int) error {
	if spend.Sign() <= 0 {
		return nil
	}
	bal, err := im.ledger.BalanceOf(c, bidder.ToLower())
	if err != nil {
		c.WithField("err", err).Error("ledger.BalanceOf failed")
		return err
	}
	if bal.Cmp(spend) < 0 {
		im.met.BumpSum("bid.unfunded", 1)
		return xerrors.Errorf("bid needs %s, balance is %s: %w", spend, bal, domain.ErrInsufficientFunds)
	}
	return nil
}

func (im *impl) CancelAuction(c ctx.Ctx, caller domain.Address) error {
	return im.mutate(c, "cancel", func(c ctx.Ctx, now time.Time, rec *auction.Record) ([]*auction.Event, effect, error) {
		if err := im.access.Authorize(c, caller); err != nil {
			return nil, nil, err
		}
		if rec.State.Phase(now) != auction.PhaseActive {
			return nil, nil, domain.ErrWrongPhase
		}

		prev := rec.State.Leader
		rec.State = auction.InactiveState()
		return []*auction.Event{auction.NewAuctionCancelled()}, im.refund(prev), nil
	})
}

func (im *impl) SettleAuction(c ctx.Ctx, caller domain.Address) error {
	return im.mutate(c, "settle", func(c ctx.Ctx, now time.Time, rec *auction.Record) ([]*auction.Event, effect, error) {
		if rec.State.Phase(now) != auction.PhaseExpired {
			return nil, nil, domain.ErrWrongPhase
		}

		prev := rec.State.Leader
		prevBeneficiary := rec.Config.Beneficiary
		rec.State = auction.InactiveState()

		winner, ok := prev.(auction.TopBid)
		if !ok {
			// nobody bid, the beneficiary takes over a renounced role
			return []*auction.Event{auction.NewAuctionCancelled()}, func(c ctx.Ctx) error {
				if _, held, err := im.access.CurrentHolder(c); err != nil || held {
					return err
				}
				if prevBeneficiary.IsEmpty() {
					return nil
				}
				return im.access.Handover(c, prevBeneficiary)
			}, nil
		}

		rec.Config.Beneficiary = winner.Bidder
		events := []*auction.Event{auction.NewAuctionSettled(winner.Bidder, prevBeneficiary, winner.Bid)}
		return events, func(c ctx.Ctx) error {
			if err := im.access.Handover(c, winner.Bidder); err != nil {
				return err
			}
			return im.ledger.Credit(c, prevBeneficiary, winner.Bid)
		}, nil
	})
}

// WithdrawItem releases a held item while no auction runs. Custody runs its own
// transaction, the engine lock keeps an auction from starting meanwhile.
func (im *impl) WithdrawItem(c ctx.Ctx, caller domain.Address, item custody.Item, recipient domain.Address) error {
	return im.locked(c, func(c ctx.Ctx) error {
		rec, err := im.load(c)
		if err != nil {
			return err
		}
		if err := im.access.Authorize(c, caller); err != nil {
			return err
		}
		if rec.State.Phase(im.now()) != auction.PhaseInactive {
			return domain.ErrWrongPhase
		}
		if err := im.custody.Release(c, item, recipient); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"item":      item.String(),
				"recipient": recipient,
			}).Error("custody.Release failed")
			return err
		}
		return nil
	})
}

func (im *impl) MinimumBid(c ctx.Ctx) (*big.Int, error) {
	rec, err := im.load(c)
	if err != nil {
		return nil, err
	}
	return auction.MinimumBid(rec.State.Leader, rec.Config.MinBidIncreaseBps), nil
}

func (im *impl) Status(c ctx.Ctx) (*auction.Status, error) {
	rec, err := im.load(c)
	if err != nil {
		return nil, err
	}

	now := im.now()
	s := &auction.Status{
		Round:      rec.Round,
		Config:     rec.Config,
		Phase:      rec.State.Phase(now),
		MinimumBid: auction.MinimumBid(rec.State.Leader, rec.Config.MinBidIncreaseBps),
		Now:        now,
	}
	if s.Phase != auction.PhaseInactive {
		s.Deadline = ptr.Time(rec.State.Deadline)
	}
	if top, ok := rec.State.Leader.(auction.TopBid); ok {
		bidder := top.Bidder
		s.TopBidder = &bidder
		s.TopBid = top.Amount()
	}
	return s, nil
}

func (im *impl) Events(c ctx.Ctx, offset, limit int) ([]*auction.Event, error) {
	res, err := im.events.FindAll(c, offset, limit)
	if err != nil {
		c.WithField("err", err).Error("events.FindAll failed")
		return nil, err
	}
	return res, nil
}

// RecentEvents reads the feed and falls back to the journal when no feed is wired
func (im *impl) RecentEvents(c ctx.Ctx, limit int) ([]*auction.Event, error) {
	if im.feed == nil {
		return im.Events(c, 0, limit)
	}
	res, err := im.feed.Recent(c, limit)
	if err != nil {
		c.WithField("err", err).Warn("feed.Recent failed, reading journal")
		return im.Events(c, 0, limit)
	}
	return res, nil
}

// refund credits a real leader back, the floor of NoBid was never paid
func (im *impl) refund(leader auction.Leader) effect {
	top, ok := leader.(auction.TopBid)
	if !ok {
		return nil
	}
	return func(c ctx.Ctx) error {
		return im.ledger.Credit(c, top.Bidder, top.Amount())
	}
}

func (im *impl) load(c ctx.Ctx) (*auction.Record, error) {
	rec, err := im.repo.Get(c)
	if errors.Is(err, domain.ErrNotFound) {
		return newRecord(auction.Config{MinBidIncreaseBps: auction.MinBidIncreaseFloorBps}), nil
	} else if err != nil {
		c.WithField("err", err).Error("repo.Get failed")
		return nil, err
	}
	return rec, nil
}

// locked serialises fn against every other mutation, in this process and across replicas
func (im *impl) locked(c ctx.Ctx, fn func(c ctx.Ctx) error) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.locker != nil {
		unlock, err := im.locker.Lock(c)
		if err != nil {
			im.met.BumpSum("lock.err", 1)
			return err
		}
		defer unlock()
	}
	return fn(c)
}

type operation func(c ctx.Ctx, now time.Time, rec *auction.Record) ([]*auction.Event, effect, error)

// mutate applies op to a copy of the record. A rejection leaves the stored record untouched.
// Otherwise the record is saved before the effect runs, both in one transaction, and the
// events are handed to the notifier after commit, still under the lock so they leave in
// Seq order.
func (im *impl) mutate(c ctx.Ctx, name string, op operation) error {
	defer im.met.BumpTime("op.time", "op", name).End()

	var round string
	err := im.locked(c, func(c ctx.Ctx) error {
		rec, err := im.load(c)
		if err != nil {
			return err
		}

		now := im.now()
		next := rec.Clone()
		evs, eff, err := op(c, now, next)
		if err != nil {
			return err
		}
		next.UpdatedAt = now
		for _, e := range evs {
			next.EventSeq++
			e.Seq = next.EventSeq
		}

		if err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
			if err := im.repo.Save(c, next); err != nil {
				c.WithField("err", err).Error("repo.Save failed")
				return err
			}
			if eff == nil {
				return nil
			}
			if err := eff(c); err != nil {
				c.WithFields(log.Fields{
					"err": err,
					"op":  name,
				}).Error("auction effect failed")
				return err
			}
			return nil
		}); err != nil {
			im.restore(c, rec)
			return err
		}

		for _, e := range evs {
			e.ID = im.newId()
			e.Round = next.Round
			e.Timestamp = now
		}
		round = next.Round
		im.publish(c, evs)
		return nil
	})
	if err != nil {
		im.met.BumpSum("op.rejected", 1, "op", name)
		return err
	}

	im.met.BumpSum("op.committed", 1, "op", name)
	c.WithFields(log.Fields{
		"op":    name,
		"round": round,
	}).Debug("auction op committed")
	return nil
}

// restore puts back the previous record when the store could not roll the save back itself
func (im *impl) restore(c ctx.Ctx, rec *auction.Record) {
	if _, ok := im.tx.(domain.NoTransaction); !ok {
		return
	}
	if err := im.repo.Save(ctx.Detach(c), rec); err != nil {
		c.WithField("err", err).Error("restore record failed")
	}
}

func (im *impl) publish(c ctx.Ctx, events []*auction.Event) {
	if im.notifier == nil {
		return
	}
	for _, e := range events {
		if err := im.notifier.Notify(c, e); err != nil {
			c.WithFields(log.Fields{
				"err":   err,
				"event": e.Type,
			}).Error("notifier.Notify failed")
		}
	}
}
