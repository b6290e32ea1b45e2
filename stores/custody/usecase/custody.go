package usecase

import (
	"errors"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/custody"
)

// CustodyUseCaseCfg leaves Verifier and Transferer nil for a custody that only keeps books
type CustodyUseCaseCfg struct {
	Repo       custody.Repo
	Verifier   custody.OwnershipVerifier
	Transferer custody.Transferer
	Vault      domain.Address
	Transactor domain.Transactor
}

type impl struct {
	repo       custody.Repo
	verifier   custody.OwnershipVerifier
	transferer custody.Transferer
	vault      domain.Address
	tx         domain.Transactor
	met        metrics.Service
	now        func() time.Time
}

func New(cfg *CustodyUseCaseCfg) custody.Usecase {
	return &impl{
		repo:       cfg.Repo,
		verifier:   cfg.Verifier,
		transferer: cfg.Transferer,
		vault:      cfg.Vault,
		tx:         cfg.Transactor,
		met:        metrics.New("custody"),
		now:        time.Now,
	}
}

func (im *impl) Receive(c ctx.Ctx, depositor domain.Address, item custody.Item) error {
	if depositor.IsEmpty() || item.Contract.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if _, err := item.TokenId.ToBigInt(); err != nil {
		return domain.ErrBadParamInput
	}
	item = item.Normalize()

	if im.verifier != nil {
		owner, err := im.verifier.OwnerOf(c, item)
		if err != nil {
			c.WithFields(log.Fields{
				"err":  err,
				"item": item.String(),
			}).Error("verifier.OwnerOf failed")
			return err
		}
		if !owner.Equals(im.vault) {
			c.WithFields(log.Fields{
				"item":  item.String(),
				"owner": owner,
			}).Warn("item not in vault")
			return domain.ErrUnauthorized
		}
	}

	err := im.repo.Insert(c, &custody.Holding{
		Item:       item,
		Depositor:  depositor.ToLower(),
		ReceivedAt: im.now(),
	})
	if errors.Is(err, domain.ErrConflict) {
		return err
	} else if err != nil {
		c.WithField("err", err).Error("repo.Insert failed")
		return err
	}

	im.met.BumpSum("receive", 1)
	c.WithFields(log.Fields{
		"item":      item.String(),
		"depositor": depositor,
	}).Info("item received")
	return nil
}

// Release drops the holding and sends the token, a failed transfer keeps the holding
func (im *impl) Release(c ctx.Ctx, item custody.Item, recipient domain.Address) error {
	if recipient.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	item = item.Normalize()

	if _, err := im.repo.FindOne(c, item); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.WithField("err", err).Error("repo.FindOne failed")
		}
		return err
	}

	var hash domain.TxHash
	err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.repo.Remove(c, item); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				c.WithField("err", err).Error("repo.Remove failed")
			}
			return err
		}
		if im.transferer == nil {
			return nil
		}
		h, err := im.transferer.Transfer(c, item, recipient)
		if err != nil {
			c.WithField("err", err).Error("transferer.Transfer failed")
			return err
		}
		hash = h
		return nil
	})
	if err != nil {
		im.met.BumpSum("release.err", 1)
		return err
	}

	im.met.BumpSum("release", 1)
	c.WithFields(log.Fields{
		"item":      item.String(),
		"recipient": recipient,
		"txHash":    hash,
	}).Info("item released")
	return nil
}

func (im *impl) Holdings(c ctx.Ctx) ([]*custody.Holding, error) {
	res, err := im.repo.FindAll(c)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}
