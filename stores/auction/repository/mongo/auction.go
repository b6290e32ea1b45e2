package mongo

import (
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/goauction/base/amount"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
)

const recordId = "engine"

const (
	leaderNoBid  = "noBid"
	leaderTopBid = "topBid"
)

// recordDoc flattens the leader, Amount is the floor for noBid and the bid for topBid
type recordDoc struct {
	ID                string               `bson:"_id"`
	Round             string               `bson:"round"`
	MinBidIncreaseBps int64                `bson:"minBidIncreaseBps"`
	Beneficiary       domain.Address       `bson:"beneficiary"`
	Deadline          time.Time            `bson:"deadline"`
	LeaderType        string               `bson:"leaderType"`
	Bidder            domain.Address       `bson:"bidder,omitempty"`
	Amount            primitive.Decimal128 `bson:"amount"`
	EventSeq          int64                `bson:"eventSeq"`
	UpdatedAt         time.Time            `bson:"updatedAt"`
}

func toDoc(r *auction.Record) (*recordDoc, error) {
	doc := &recordDoc{
		ID:                recordId,
		Round:             r.Round,
		MinBidIncreaseBps: r.Config.MinBidIncreaseBps,
		Beneficiary:       r.Config.Beneficiary.ToLower(),
		Deadline:          r.State.Deadline,
		LeaderType:        leaderNoBid,
		EventSeq:          r.EventSeq,
		UpdatedAt:         r.UpdatedAt,
	}

	value := new(big.Int)
	switch l := r.State.Leader.(type) {
	case auction.TopBid:
		doc.LeaderType = leaderTopBid
		doc.Bidder = l.Bidder.ToLower()
		value = l.Amount()
	case auction.NoBid:
		value = l.Amount()
	}

	dec, err := amount.ToDecimal128(value)
	if err != nil {
		return nil, err
	}
	doc.Amount = dec
	return doc, nil
}

func (d *recordDoc) toRecord() (*auction.Record, error) {
	value, err := amount.FromDecimal128(d.Amount)
	if err != nil {
		return nil, err
	}

	r := &auction.Record{
		Round: d.Round,
		Config: auction.Config{
			MinBidIncreaseBps: d.MinBidIncreaseBps,
			Beneficiary:       d.Beneficiary,
		},
		State:     auction.State{Deadline: d.Deadline, Leader: auction.NoBid{Floor: value}},
		EventSeq:  d.EventSeq,
		UpdatedAt: d.UpdatedAt,
	}
	// a zero deadline may come back as the epoch from older documents
	if d.Deadline.IsZero() || d.Deadline.Unix() <= 0 {
		r.State.Deadline = time.Time{}
	}
	if d.LeaderType == leaderTopBid {
		r.State.Leader = auction.TopBid{Bidder: d.Bidder, Bid: value}
	}
	return r, nil
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) auction.Repo {
	return &impl{q}
}

func (im *impl) Get(c ctx.Ctx) (*auction.Record, error) {
	doc := &recordDoc{}
	if err := im.q.FindOne(c, domain.TableAuctions, bson.M{"_id": recordId}, doc); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}

	r, err := doc.toRecord()
	if err != nil {
		c.WithField("err", err).Error("doc.toRecord failed")
		return nil, err
	}
	return r, nil
}

func (im *impl) Save(c ctx.Ctx, record *auction.Record) error {
	doc, err := toDoc(record)
	if err != nil {
		c.WithField("err", err).Error("toDoc failed")
		return err
	}
	if err := im.q.Upsert(c, domain.TableAuctions, bson.M{"_id": recordId}, doc); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}
