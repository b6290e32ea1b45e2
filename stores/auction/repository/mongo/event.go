package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
)

type eventRepo struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) auction.EventRepo {
	return &eventRepo{q}
}

// EnsureIndexes creates the indexes the journal pages on
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableAuctionEvents,
		query.Index{Keys: []string{"seq"}, Unique: true},
		query.Index{Keys: []string{"round", "seq"}},
	)
}

func (r *eventRepo) Insert(c ctx.Ctx, event *auction.Event) error {
	if err := r.q.Insert(c, domain.TableAuctionEvents, event); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *eventRepo) FindAll(c ctx.Ctx, offset, limit int) ([]*auction.Event, error) {
	res := []*auction.Event{}
	if err := r.q.Search(c, domain.TableAuctionEvents, offset, limit, "-seq", bson.M{"seq": bson.M{"$gt": 0}}, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
