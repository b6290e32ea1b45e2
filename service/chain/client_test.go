package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/goauction/base/ctx"
	bEthereum "github.com/x-xyz/goauction/base/ethereum"
)

type fakeRPC struct {
	nonce    uint64
	sent     []*types.Transaction
	sendErr  error
	pending  bool
	receipts map[common.Hash]*types.Receipt
}

func (f *fakeRPC) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	return nil, errors.New("not used")
}

func (f *fakeRPC) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeRPC) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(30e9), nil
}

func (f *fakeRPC) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	f.nonce++
	return nil
}

func (f *fakeRPC) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if r, ok := f.receipts[hash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func (f *fakeRPC) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	for _, tx := range f.sent {
		if tx.Hash() == hash {
			return tx, f.pending, nil
		}
	}
	return nil, false, ethereum.NotFound
}

type clientSuite struct {
	suite.Suite
	rpc *fakeRPC
	im  *clientImpl
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(clientSuite))
}

func (s *clientSuite) SetupTest() {
	s.rpc = &fakeRPC{nonce: 3, receipts: map[common.Hash]*types.Receipt{}}
	s.im = newClient(map[int32]bEthereum.RPC{5: s.rpc})
}

func (s *clientSuite) TestSendSignsForChain() {
	key, from, err := bEthereum.LoadKey("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	s.Require().NoError(err)

	to := common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	hash, err := s.im.Send(bCtx.Background(), 5, key, Tx{To: to, Value: big.NewInt(1e18), GasLimit: 21000})
	s.Require().NoError(err)
	s.Require().Len(s.rpc.sent, 1)

	tx := s.rpc.sent[0]
	s.Equal(hash, tx.Hash())
	s.Equal(uint64(3), tx.Nonce())
	s.Equal(uint64(21000), tx.Gas())
	s.Equal(to, *tx.To())
	s.Equal("1000000000000000000", tx.Value().String())

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(5)), tx)
	s.NoError(err)
	s.Equal(from, sender)

	_, err = s.im.Send(bCtx.Background(), 5, key, Tx{To: to, GasLimit: 21000})
	s.NoError(err)
	s.Equal(uint64(4), s.rpc.sent[1].Nonce())
	s.Equal(int64(0), s.rpc.sent[1].Value().Int64())
}

func (s *clientSuite) TestSendUnsupportedChain() {
	key, _, err := bEthereum.GenerateKey()
	s.Require().NoError(err)
	_, err = s.im.Send(bCtx.Background(), 1, key, Tx{})
	s.Equal(ErrUnsupportedChain, err)
}

func (s *clientSuite) TestSendError() {
	s.rpc.sendErr = errors.New("nonce too low")
	key, _, err := bEthereum.GenerateKey()
	s.Require().NoError(err)
	_, err = s.im.Send(bCtx.Background(), 5, key, Tx{GasLimit: 21000})
	s.EqualError(err, "nonce too low")
}

func (s *clientSuite) TestTransfer() {
	key, from, err := bEthereum.LoadKey("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	s.Require().NoError(err)
	to := common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	c := bCtx.Background()

	hash, err := s.im.Send(c, 5, key, Tx{To: to, Value: big.NewInt(2040), GasLimit: 21000})
	s.Require().NoError(err)

	s.rpc.pending = true
	_, err = s.im.Transfer(c, 5, hash)
	s.Equal(ErrPending, err)

	s.rpc.pending = false
	_, err = s.im.Transfer(c, 5, hash)
	s.Equal(ErrPending, err)

	s.rpc.receipts[hash] = &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(9)}
	_, err = s.im.Transfer(c, 5, hash)
	s.Equal(ErrReverted, err)

	s.rpc.receipts[hash] = &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(9)}
	t, err := s.im.Transfer(c, 5, hash)
	s.Require().NoError(err)
	s.Equal(from, t.From)
	s.Equal(to, t.To)
	s.Equal(int64(2040), t.Value.Int64())
	s.Equal(int64(9), t.Block.Int64())

	_, err = s.im.Transfer(c, 5, common.HexToHash("0x01"))
	s.Equal(ethereum.NotFound, err)

	_, err = s.im.Transfer(c, 1, hash)
	s.Equal(ErrUnsupportedChain, err)
}
