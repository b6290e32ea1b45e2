package ethereum

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

type slowRPC struct {
	inflight int32
	peak     int32
}

func (r *slowRPC) enter() {
	n := atomic.AddInt32(&r.inflight, 1)
	for {
		p := atomic.LoadInt32(&r.peak)
		if n <= p || atomic.CompareAndSwapInt32(&r.peak, p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(&r.inflight, -1)
}

func (r *slowRPC) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	r.enter()
	return nil, nil
}

func (r *slowRPC) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	r.enter()
	return 7, nil
}

func (r *slowRPC) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	r.enter()
	return big.NewInt(1), nil
}

func (r *slowRPC) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	r.enter()
	return nil
}

func (r *slowRPC) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	r.enter()
	return nil, nil
}

func (r *slowRPC) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	r.enter()
	return nil, true, nil
}

func TestThrottledClientCapsInflight(t *testing.T) {
	req := require.New(t)
	rpc := &slowRPC{}
	c := newThrottled(rpc, 2)

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := c.PendingNonceAt(context.Background(), common.Address{})
			req.NoError(err)
			req.Equal(uint64(7), n)
		}()
	}
	wg.Wait()
	req.LessOrEqual(atomic.LoadInt32(&rpc.peak), int32(2))
}

func TestThrottledClientCancelled(t *testing.T) {
	c := newThrottled(&slowRPC{}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SuggestGasPrice(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
