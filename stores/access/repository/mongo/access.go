package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/access"
	"github.com/x-xyz/goauction/service/query"
)

// holderDocId is the only document of the holders table, one engine has one holder
const holderDocId = "engine"

type holderDoc struct {
	ID        string         `bson:"_id"`
	Holder    domain.Address `bson:"holder"`
	UpdatedAt time.Time      `bson:"updatedAt"`
}

type impl struct {
	q   query.Mongo
	now func() time.Time
}

func New(q query.Mongo) access.Repo {
	return &impl{q: q, now: time.Now}
}

func (im *impl) Get(c ctx.Ctx) (*access.Holder, error) {
	res := &holderDoc{}
	if err := im.q.FindOne(c, domain.TableAccessHolders, bson.M{"_id": holderDocId}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return &access.Holder{Holder: res.Holder, UpdatedAt: res.UpdatedAt}, nil
}

func (im *impl) Set(c ctx.Ctx, holder domain.Address) error {
	doc := &holderDoc{
		ID:        holderDocId,
		Holder:    holder.ToLower(),
		UpdatedAt: im.now(),
	}
	if err := im.q.Upsert(c, domain.TableAccessHolders, bson.M{"_id": holderDocId}, doc); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}
