package payer

import (
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/ledger"
	"github.com/x-xyz/goauction/service/chain"
)

const (
	transferGas  = uint64(21000)
	sendAttempts = 3
)

// errors the node will keep returning no matter how often the tx is resent
var permanentErrs = []string{
	"insufficient funds",
	"intrinsic gas too low",
	"invalid sender",
}

type chainPayer struct {
	client  chain.Client
	chainId int32
	key     *ecdsa.PrivateKey
	backoff func() *backoff.Backoff
}

// NewChainPayer pays from the wallet of key with a plain value transfer
func NewChainPayer(client chain.Client, chainId int32, key *ecdsa.PrivateKey) ledger.Payer {
	return &chainPayer{
		client:  client,
		chainId: chainId,
		key:     key,
		backoff: func() *backoff.Backoff { return backoff.NewExponential(500*time.Millisecond, 5*time.Second) },
	}
}

func (p *chainPayer) Pay(c ctx.Ctx, to domain.Address, amount *big.Int) (domain.TxHash, error) {
	var hash common.Hash
	err := p.backoff().Retry(c, sendAttempts, func() error {
		h, err := p.client.Send(c, p.chainId, p.key, chain.Tx{
			To:       common.HexToAddress(to.String()),
			Value:    amount,
			GasLimit: transferGas,
		})
		if err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"to":  to,
			}).Warn("client.Send failed")
			if isPermanent(err) {
				return xerrors.Errorf("%v: %w", err, backoff.ErrPermanent)
			}
			return err
		}
		hash = h
		return nil
	})
	if err != nil {
		return "", err
	}
	return domain.TxHash(hash.Hex()), nil
}

func isPermanent(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, p := range permanentErrs {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

type ledgerPayer struct{}

// NewLedgerPayer moves nothing, the payout record is the only trace. Meant for dev setups
// without a funded wallet.
func NewLedgerPayer() ledger.Payer {
	return ledgerPayer{}
}

func (ledgerPayer) Pay(c ctx.Ctx, to domain.Address, amount *big.Int) (domain.TxHash, error) {
	c.WithFields(log.Fields{
		"to":     to,
		"amount": amount,
	}).Info("payout recorded without transfer")
	return "", nil
}
