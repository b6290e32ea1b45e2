package notifier

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/auction"
	mAuction "github.com/x-xyz/goauction/domain/auction/mocks"
)

func TestFanOutDeliversToAll(t *testing.T) {
	e := &auction.Event{ID: "e1", Type: auction.EventNewTopBid, Bidder: "0xa", Amount: "5"}

	var delivered int32
	count := func(mock.Arguments) { atomic.AddInt32(&delivered, 1) }

	ok := mAuction.NewNotifier(t)
	ok.On("Notify", mock.Anything, e).Run(count).Return(nil).Once()
	failing := mAuction.NewNotifier(t)
	failing.On("Notify", mock.Anything, e).Run(count).Return(errors.New("feed down")).Once()

	f := NewFanOut(2, ok, NewLog(), failing)
	defer f.Close()

	require.NoError(t, f.Notify(ctx.Background(), e))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&delivered) == 2 }, time.Second, 5*time.Millisecond)
}

func TestFanOutIgnoresCancelledRequest(t *testing.T) {
	e := &auction.Event{ID: "e2", Type: auction.EventAuctionCancelled}
	done := make(chan struct{})

	n := mAuction.NewNotifier(t)
	n.On("Notify", mock.Anything, e).Run(func(args mock.Arguments) {
		assert.NoError(t, args.Get(0).(ctx.Ctx).Err())
		close(done)
	}).Return(nil).Once()

	f := NewFanOut(1, n)
	defer f.Close()

	c, cancel := ctx.WithCancel(ctx.Background())
	cancel()
	require.NoError(t, f.Notify(c, e))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

type sequence struct {
	mu   sync.Mutex
	seqs []int64
}

func (q *sequence) Notify(c ctx.Ctx, e *auction.Event) error {
	if e.Seq%7 == 0 {
		time.Sleep(time.Millisecond)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seqs = append(q.seqs, e.Seq)
	return nil
}

func TestFanOutKeepsOrderPerNotifier(t *testing.T) {
	journal, feed := &sequence{}, &sequence{}
	f := NewFanOut(0, journal, feed)
	defer f.Close()

	for i := int64(1); i <= 200; i++ {
		require.NoError(t, f.Notify(ctx.Background(), &auction.Event{ID: fmt.Sprint(i), Seq: i}))
	}

	for _, n := range []*sequence{journal, feed} {
		n := n
		assert.Eventually(t, func() bool {
			n.mu.Lock()
			defer n.mu.Unlock()
			return len(n.seqs) == 200
		}, 5*time.Second, 5*time.Millisecond)

		n.mu.Lock()
		require.Len(t, n.seqs, 200)
		for i, seq := range n.seqs {
			assert.Equal(t, int64(i+1), seq)
		}
		n.mu.Unlock()
	}
}

func TestJournal(t *testing.T) {
	c := ctx.Background()
	e := &auction.Event{ID: "e3"}
	repo := mAuction.NewEventRepo(t)
	repo.On("Insert", c, e).Return(nil).Once()
	require.NoError(t, NewJournal(repo).Notify(c, e))
}

func TestLog(t *testing.T) {
	d := time.Unix(1660000900, 0)
	assert.NoError(t, NewLog().Notify(ctx.Background(), &auction.Event{Type: auction.EventAuctionExtended, Deadline: &d}))
}
