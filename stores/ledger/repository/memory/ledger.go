package memory

import (
	"math/big"
	"strings"
	"sync"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/ledger"
)

type impl struct {
	mu       sync.Mutex
	balances map[domain.Address]*big.Int
	payouts  []ledger.Payout
	deposits map[domain.TxHash]ledger.Deposit
}

func New() ledger.Repo {
	return &impl{
		balances: map[domain.Address]*big.Int{},
		deposits: map[domain.TxHash]ledger.Deposit{},
	}
}

func (im *impl) Credit(c ctx.Ctx, account domain.Address, amount *big.Int) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	key := account.ToLower()
	if _, ok := im.balances[key]; !ok {
		im.balances[key] = new(big.Int)
	}
	im.balances[key].Add(im.balances[key], amount)
	return nil
}

func (im *impl) Debit(c ctx.Ctx, account domain.Address, amount *big.Int) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	key := account.ToLower()
	bal := domain.CopyBig(im.balances[key])
	if bal.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	im.balances[key] = bal.Sub(bal, amount)
	return nil
}

func (im *impl) Drain(c ctx.Ctx, account domain.Address) (*big.Int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	key := account.ToLower()
	res := domain.CopyBig(im.balances[key])
	if _, ok := im.balances[key]; ok {
		im.balances[key] = new(big.Int)
	}
	return res, nil
}

func (im *impl) BalanceOf(c ctx.Ctx, account domain.Address) (*big.Int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return domain.CopyBig(im.balances[account.ToLower()]), nil
}

func (im *impl) InsertPayout(c ctx.Ctx, payout *ledger.Payout) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.payouts = append(im.payouts, *payout)
	return nil
}

func (im *impl) InsertDeposit(c ctx.Ctx, deposit *ledger.Deposit) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	key := domain.TxHash(strings.ToLower(string(deposit.TxHash)))
	if _, ok := im.deposits[key]; ok {
		return domain.ErrConflict
	}
	im.deposits[key] = *deposit
	return nil
}
