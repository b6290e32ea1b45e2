package ledger

import (
	"math/big"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

// Payout records a withdrawal that left the ledger
type Payout struct {
	ID        string         `json:"id" bson:"_id"`
	Account   domain.Address `json:"account" bson:"account"`
	Amount    string         `json:"amount" bson:"amount"`
	TxHash    domain.TxHash  `json:"txHash,omitempty" bson:"txHash,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}

// Deposit is a confirmed transfer into the engine wallet, credited to its sender once
type Deposit struct {
	TxHash    domain.TxHash  `json:"txHash" bson:"_id"`
	Account   domain.Address `json:"account" bson:"account"`
	Amount    string         `json:"amount" bson:"amount"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}

// Transfer is a successful native currency transfer seen on chain
type Transfer struct {
	From  domain.Address
	To    domain.Address
	Value *big.Int
}

type Repo interface {
	// Credit adds amount to the balance of account, creating it when missing
	Credit(c ctx.Ctx, account domain.Address, amount *big.Int) error
	// Debit takes amount off the balance of account, ErrInsufficientFunds when it holds less
	Debit(c ctx.Ctx, account domain.Address, amount *big.Int) error
	// Drain zeroes the balance of account and returns what it held
	Drain(c ctx.Ctx, account domain.Address) (*big.Int, error)
	BalanceOf(c ctx.Ctx, account domain.Address) (*big.Int, error)
	InsertPayout(c ctx.Ctx, payout *Payout) error
	// InsertDeposit fails with ErrConflict when the tx hash was recorded before
	InsertDeposit(c ctx.Ctx, deposit *Deposit) error
}

// Payer moves native currency out of the engine
type Payer interface {
	Pay(c ctx.Ctx, to domain.Address, amount *big.Int) (domain.TxHash, error)
}

// DepositVerifier looks up a confirmed transfer into the engine wallet
type DepositVerifier interface {
	Verify(c ctx.Ctx, txHash domain.TxHash) (*Transfer, error)
}

type Usecase interface {
	// Credit never rejects a valid account, non-positive amounts are ignored
	Credit(c ctx.Ctx, account domain.Address, amount *big.Int) error
	// Debit spends from a funded balance, non-positive amounts are ignored
	Debit(c ctx.Ctx, account domain.Address, amount *big.Int) error
	// Deposit verifies a transfer into the engine wallet and credits its sender. A tx hash
	// credits at most once.
	Deposit(c ctx.Ctx, txHash domain.TxHash) (*Deposit, error)
	// Withdraw pays out the full balance of account. Nothing to pay is not an error, it
	// returns zero.
	Withdraw(c ctx.Ctx, account domain.Address) (*big.Int, error)
	BalanceOf(c ctx.Ctx, account domain.Address) (*big.Int, error)
}
