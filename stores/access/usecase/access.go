package usecase

import (
	"errors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/access"
)

type impl struct {
	repo access.Repo
}

func New(repo access.Repo) access.Usecase {
	return &impl{repo}
}

func (im *impl) Init(c ctx.Ctx, owner domain.Address) error {
	if _, err := im.repo.Get(c); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		c.WithField("err", err).Error("repo.Get failed")
		return err
	}

	if owner.IsEmpty() {
		return domain.ErrInvalidConfig
	}
	if err := im.repo.Set(c, owner); err != nil {
		c.WithField("err", err).Error("repo.Set failed")
		return err
	}
	c.WithField("holder", owner).Info("access holder initialised")
	return nil
}

func (im *impl) CurrentHolder(c ctx.Ctx) (domain.Address, bool, error) {
	h, err := im.repo.Get(c)
	if errors.Is(err, domain.ErrNotFound) {
		return "", false, nil
	} else if err != nil {
		c.WithField("err", err).Error("repo.Get failed")
		return "", false, err
	}
	if !h.IsHeld() {
		return "", false, nil
	}
	return h.Holder, true, nil
}

func (im *impl) Authorize(c ctx.Ctx, caller domain.Address) error {
	holder, held, err := im.CurrentHolder(c)
	if err != nil {
		return err
	}
	if !held || caller.IsEmpty() || !holder.Equals(caller) {
		return domain.ErrUnauthorized
	}
	return nil
}

func (im *impl) Transfer(c ctx.Ctx, caller, to domain.Address) error {
	if err := im.Authorize(c, caller); err != nil {
		return err
	}
	if to.IsEmpty() {
		return domain.ErrInvalidConfig
	}
	return im.set(c, to)
}

func (im *impl) Renounce(c ctx.Ctx, caller domain.Address) error {
	if err := im.Authorize(c, caller); err != nil {
		return err
	}
	return im.set(c, "")
}

func (im *impl) Handover(c ctx.Ctx, to domain.Address) error {
	return im.set(c, to)
}

func (im *impl) set(c ctx.Ctx, to domain.Address) error {
	if err := im.repo.Set(c, to); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"to":  to,
		}).Error("repo.Set failed")
		return err
	}
	return nil
}
