package payer

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/ledger"
	"github.com/x-xyz/goauction/service/chain"
	mChain "github.com/x-xyz/goauction/service/chain/mocks"
)

const (
	wallet = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	txHash = domain.TxHash("0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060")
)

type depositSuite struct {
	suite.Suite

	c      ctx.Ctx
	client *mChain.Client
	v      ledger.DepositVerifier
	hash   common.Hash
}

func TestDepositSuite(t *testing.T) {
	suite.Run(t, new(depositSuite))
}

func (s *depositSuite) SetupTest() {
	s.c = ctx.Background()
	s.client = mChain.NewClient(s.T())
	s.v = NewDepositVerifier(s.client, 5, common.HexToAddress(wallet))
	s.hash = common.HexToHash(string(txHash))
}

func (s *depositSuite) TestVerify() {
	s.client.On("Transfer", s.c, int32(5), s.hash).Return(&chain.Transfer{
		From:  common.HexToAddress(to),
		To:    common.HexToAddress(wallet),
		Value: big.NewInt(2040),
		Block: big.NewInt(9),
	}, nil).Once()

	t, err := s.v.Verify(s.c, txHash)
	s.Require().NoError(err)
	s.Equal(domain.Address(to).ToLower(), t.From)
	s.Equal(domain.Address(wallet).ToLower(), t.To)
	s.Equal(int64(2040), t.Value.Int64())
}

func (s *depositSuite) TestVerifyMalformedHash() {
	for _, h := range []domain.TxHash{"", "0x01", "5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"} {
		_, err := s.v.Verify(s.c, h)
		s.ErrorIs(err, domain.ErrBadParamInput, h)
	}
}

func (s *depositSuite) TestVerifyRejects() {
	tests := []struct {
		desc     string
		transfer *chain.Transfer
		err      error
		want     error
	}{
		{"pending", nil, chain.ErrPending, domain.ErrTxNotConfirmed},
		{"unknown", nil, ethereum.NotFound, domain.ErrTxNotConfirmed},
		{"reverted", nil, chain.ErrReverted, domain.ErrBadParamInput},
		{"other wallet", &chain.Transfer{From: common.HexToAddress(to), To: common.HexToAddress(to), Value: big.NewInt(1)}, nil, domain.ErrBadParamInput},
		{"no value", &chain.Transfer{From: common.HexToAddress(to), To: common.HexToAddress(wallet), Value: new(big.Int)}, nil, domain.ErrBadParamInput},
	}
	for _, tt := range tests {
		s.client.On("Transfer", s.c, int32(5), s.hash).Return(tt.transfer, tt.err).Once()
		_, err := s.v.Verify(s.c, txHash)
		s.ErrorIs(err, tt.want, tt.desc)
	}
}

func (s *depositSuite) TestVerifyRpcError() {
	s.client.On("Transfer", s.c, int32(5), s.hash).Return(nil, errors.New("rpc down")).Once()

	_, err := s.v.Verify(s.c, txHash)
	s.EqualError(err, "rpc down")
}
