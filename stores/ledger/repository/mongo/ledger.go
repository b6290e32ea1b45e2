package mongo

import (
	"math/big"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/goauction/base/amount"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/ledger"
	"github.com/x-xyz/goauction/service/query"
)

type balanceDoc struct {
	Account   domain.Address       `bson:"_id"`
	Balance   primitive.Decimal128 `bson:"balance"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt,omitempty"`
}

type impl struct {
	q   query.Mongo
	now func() time.Time
}

func New(q query.Mongo) ledger.Repo {
	return &impl{q: q, now: time.Now}
}

func (im *impl) Credit(c ctx.Ctx, account domain.Address, value *big.Int) error {
	dec, err := amount.ToDecimal128(value)
	if err != nil {
		c.WithField("err", err).Error("amount.ToDecimal128 failed")
		return err
	}

	res := &balanceDoc{}
	qry := bson.M{"_id": account.ToLower()}
	if err := im.q.IncrementMany(c, domain.TableBalances, qry, bson.M{"balance": dec}, bson.M{"createdAt": im.now()}, res); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"account": account,
			"amount":  value,
		}).Error("q.IncrementMany failed")
		return err
	}
	return nil
}

// Debit only matches a balance that covers amount, so a concurrent drain can never push it negative
func (im *impl) Debit(c ctx.Ctx, account domain.Address, value *big.Int) error {
	dec, err := amount.ToDecimal128(value)
	if err != nil {
		c.WithField("err", err).Error("amount.ToDecimal128 failed")
		return err
	}
	neg, err := amount.ToDecimal128(new(big.Int).Neg(value))
	if err != nil {
		c.WithField("err", err).Error("amount.ToDecimal128 failed")
		return err
	}

	qry := bson.M{"_id": account.ToLower(), "balance": bson.M{"$gte": dec}}
	update := bson.M{
		"$inc": bson.M{"balance": neg},
		"$set": bson.M{"updatedAt": im.now()},
	}
	if err := im.q.Update(c, domain.TableBalances, qry, update); err == query.ErrNotFound {
		return domain.ErrInsufficientFunds
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"account": account,
			"amount":  value,
		}).Error("q.Update failed")
		return err
	}
	return nil
}

func (im *impl) Drain(c ctx.Ctx, account domain.Address) (*big.Int, error) {
	zero, _ := amount.ToDecimal128(new(big.Int))
	before := &balanceDoc{}
	set := bson.M{"balance": zero, "updatedAt": im.now()}
	if err := im.q.Swap(c, domain.TableBalances, bson.M{"_id": account.ToLower()}, set, before); err == query.ErrNotFound {
		return new(big.Int), nil
	} else if err != nil {
		c.WithField("err", err).Error("q.Swap failed")
		return nil, err
	}
	return amount.FromDecimal128(before.Balance)
}

func (im *impl) BalanceOf(c ctx.Ctx, account domain.Address) (*big.Int, error) {
	res := &balanceDoc{}
	if err := im.q.FindOne(c, domain.TableBalances, bson.M{"_id": account.ToLower()}, res); err == query.ErrNotFound {
		return new(big.Int), nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return amount.FromDecimal128(res.Balance)
}

func (im *impl) InsertPayout(c ctx.Ctx, payout *ledger.Payout) error {
	p := *payout
	p.Account = p.Account.ToLower()
	if err := im.q.Insert(c, domain.TablePayouts, &p); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) InsertDeposit(c ctx.Ctx, deposit *ledger.Deposit) error {
	d := *deposit
	d.TxHash = domain.TxHash(strings.ToLower(string(d.TxHash)))
	d.Account = d.Account.ToLower()
	if err := im.q.Insert(c, domain.TableDeposits, &d); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}
