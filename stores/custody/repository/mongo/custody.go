package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/custody"
	"github.com/x-xyz/goauction/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) custody.Repo {
	return &impl{q}
}

// EnsureIndexes makes a second receive of the same item a duplicate key
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableCustodyItems, query.Index{
		Keys:   []string{"chainId", "contract", "tokenId"},
		Unique: true,
	})
}

func (im *impl) Insert(c ctx.Ctx, holding *custody.Holding) error {
	h := *holding
	h.Item = h.Item.Normalize()
	if err := im.q.Insert(c, domain.TableCustodyItems, &h); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, item custody.Item) (*custody.Holding, error) {
	res := &custody.Holding{}
	if qry, err := mongoclient.Selector(item.Normalize()); err != nil {
		c.WithField("err", err).Error("mongoclient.Selector failed")
		return nil, err
	} else if err := im.q.FindOne(c, domain.TableCustodyItems, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx) ([]*custody.Holding, error) {
	res := []*custody.Holding{}

	// to prevent scancol error
	qry := bson.M{"contract": bson.M{"$exists": true}}

	if err := im.q.Search(c, domain.TableCustodyItems, 0, 0, "receivedAt", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Remove(c ctx.Ctx, item custody.Item) error {
	if slr, err := mongoclient.Selector(item.Normalize()); err != nil {
		c.WithField("err", err).Error("mongoclient.Selector failed")
		return err
	} else if err := im.q.Remove(c, domain.TableCustodyItems, slr); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.Remove failed")
		return err
	}
	return nil
}
