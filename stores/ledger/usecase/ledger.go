package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/ledger"
)

// LedgerUseCaseCfg wires the ledger. Without a Verifier deposits are rejected.
type LedgerUseCaseCfg struct {
	Repo       ledger.Repo
	Payer      ledger.Payer
	Verifier   ledger.DepositVerifier
	Transactor domain.Transactor
}

type impl struct {
	repo     ledger.Repo
	payer    ledger.Payer
	verifier ledger.DepositVerifier
	tx       domain.Transactor
	met      metrics.Service
	now      func() time.Time
}

func New(cfg *LedgerUseCaseCfg) ledger.Usecase {
	return &impl{
		repo:     cfg.Repo,
		payer:    cfg.Payer,
		verifier: cfg.Verifier,
		tx:       cfg.Transactor,
		met:      metrics.New("ledger"),
		now:      time.Now,
	}
}

func (im *impl) Credit(c ctx.Ctx, account domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return nil
	}
	if account.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if err := im.repo.Credit(c, account, amount); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"account": account,
			"amount":  amount,
		}).Error("repo.Credit failed")
		return err
	}
	return nil
}

func (im *impl) Debit(c ctx.Ctx, account domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return nil
	}
	if account.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if err := im.repo.Debit(c, account, amount); errors.Is(err, domain.ErrInsufficientFunds) {
		return xerrors.Errorf("debit %s from %s: %w", amount, account, err)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"account": account,
			"amount":  amount,
		}).Error("repo.Debit failed")
		return err
	}
	return nil
}

// Deposit credits the sender of a verified transfer. Recording the hash and the credit
// share one transaction, so a replayed hash credits nothing.
func (im *impl) Deposit(c ctx.Ctx, txHash domain.TxHash) (*ledger.Deposit, error) {
	if im.verifier == nil {
		return nil, domain.ErrNotImplemented
	}
	if txHash == "" {
		return nil, domain.ErrBadParamInput
	}

	t, err := im.verifier.Verify(c, txHash)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"txHash": txHash,
		}).Warn("verifier.Verify failed")
		return nil, err
	}
	if t.Value == nil || t.Value.Sign() <= 0 {
		return nil, xerrors.Errorf("transfer %s carries no value: %w", txHash, domain.ErrBadParamInput)
	}

	deposit := &ledger.Deposit{
		TxHash:    txHash,
		Account:   t.From.ToLower(),
		Amount:    t.Value.String(),
		Timestamp: im.now(),
	}
	if err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.repo.InsertDeposit(c, deposit); err != nil {
			return err
		}
		return im.repo.Credit(c, deposit.Account, t.Value)
	}); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			c.WithFields(log.Fields{
				"err":    err,
				"txHash": txHash,
			}).Error("record deposit failed")
		}
		return nil, err
	}

	im.met.BumpSum("deposit", 1)
	c.WithFields(log.Fields{
		"account": deposit.Account,
		"amount":  deposit.Amount,
		"txHash":  txHash,
	}).Info("deposited")
	return deposit, nil
}

// Withdraw drains the balance and pays it inside one transaction, a failed payment restores the balance
func (im *impl) Withdraw(c ctx.Ctx, account domain.Address) (*big.Int, error) {
	if account.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}

	paid := new(big.Int)
	drained := new(big.Int)
	var sent domain.TxHash
	err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		owed, err := im.repo.Drain(c, account)
		if err != nil {
			c.WithField("err", err).Error("repo.Drain failed")
			return err
		}
		if owed.Sign() == 0 {
			return nil
		}
		drained = owed

		payout := &ledger.Payout{
			ID:        uuid.NewString(),
			Account:   account,
			Amount:    owed.String(),
			Timestamp: im.now(),
		}
		if payout.TxHash, err = im.payer.Pay(c, account, owed); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"account": account,
				"amount":  owed,
			}).Error("payer.Pay failed")
			return err
		}
		sent = payout.TxHash
		if err := im.repo.InsertPayout(c, payout); err != nil {
			c.WithField("err", err).Error("repo.InsertPayout failed")
			return err
		}
		paid = owed
		return nil
	})
	if err != nil {
		im.met.BumpSum("withdraw.err", 1)
		if sent == "" {
			im.restore(c, account, drained)
		} else {
			// the transfer is out but the drained balance was rolled back
			im.met.BumpSum("withdraw.unrecorded", 1)
			c.WithFields(log.Fields{
				"err":     err,
				"account": account,
				"txHash":  sent,
			}).Error("payout sent but not recorded, reconcile manually")
		}
		return nil, err
	}

	if paid.Sign() > 0 {
		im.met.BumpSum("withdraw", 1)
		c.WithFields(log.Fields{
			"account": account,
			"amount":  paid,
		}).Info("withdrawn")
	}
	return paid, nil
}

// restore credits back a drained balance when the store could not roll the drain back itself
func (im *impl) restore(c ctx.Ctx, account domain.Address, drained *big.Int) {
	if _, ok := im.tx.(domain.NoTransaction); !ok || drained.Sign() == 0 {
		return
	}
	if err := im.repo.Credit(ctx.Detach(c), account, drained); err != nil {
		im.met.BumpSum("withdraw.lost", 1)
		c.WithFields(log.Fields{
			"err":     err,
			"account": account,
			"amount":  drained,
		}).Error("restore balance failed")
	}
}

func (im *impl) BalanceOf(c ctx.Ctx, account domain.Address) (*big.Int, error) {
	return im.repo.BalanceOf(c, account)
}
