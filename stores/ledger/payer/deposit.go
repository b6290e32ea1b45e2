package payer

import (
	"errors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/ledger"
	"github.com/x-xyz/goauction/service/chain"
)

type depositVerifier struct {
	client  chain.Client
	chainId int32
	wallet  common.Address
}

// NewDepositVerifier accepts mined, successful value transfers into wallet
func NewDepositVerifier(client chain.Client, chainId int32, wallet common.Address) ledger.DepositVerifier {
	return &depositVerifier{
		client:  client,
		chainId: chainId,
		wallet:  wallet,
	}
}

func (v *depositVerifier) Verify(c ctx.Ctx, txHash domain.TxHash) (*ledger.Transfer, error) {
	raw, err := hexutil.Decode(string(txHash))
	if err != nil || len(raw) != common.HashLength {
		return nil, xerrors.Errorf("malformed tx hash %q: %w", txHash, domain.ErrBadParamInput)
	}
	hash := common.BytesToHash(raw)

	t, err := v.client.Transfer(c, v.chainId, hash)
	switch {
	case errors.Is(err, chain.ErrPending), errors.Is(err, ethereum.NotFound):
		return nil, xerrors.Errorf("%s: %w", txHash, domain.ErrTxNotConfirmed)
	case errors.Is(err, chain.ErrReverted):
		return nil, xerrors.Errorf("%s reverted: %w", txHash, domain.ErrBadParamInput)
	case err != nil:
		return nil, err
	}

	if t.To != v.wallet {
		return nil, xerrors.Errorf("%s does not pay %s: %w", txHash, v.wallet.Hex(), domain.ErrBadParamInput)
	}
	if t.Value == nil || t.Value.Sign() <= 0 {
		return nil, xerrors.Errorf("%s carries no value: %w", txHash, domain.ErrBadParamInput)
	}
	return &ledger.Transfer{
		From:  domain.Address(t.From.Hex()).ToLower(),
		To:    domain.Address(t.To.Hex()).ToLower(),
		Value: t.Value,
	}, nil
}
