package memory

import (
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

func TestRecord(t *testing.T) {
	c := ctx.Background()
	repo := New()

	_, err := repo.Get(c)
	require.Equal(t, domain.ErrNotFound, err)

	rec := &auction.Record{
		Round: "r1",
		State: auction.State{Deadline: time.Unix(100, 0), Leader: auction.TopBid{Bidder: "0xa", Bid: big.NewInt(5)}},
	}
	require.NoError(t, repo.Save(c, rec))

	// the stored copy must not follow later edits of rec
	rec.State.Leader.(auction.TopBid).Bid.SetInt64(9)

	got, err := repo.Get(c)
	require.NoError(t, err)
	assert.Equal(t, "r1", got.Round)
	assert.Equal(t, int64(5), got.State.Leader.Amount().Int64())
}

func TestEventRepo(t *testing.T) {
	c := ctx.Background()
	repo := NewEventRepo()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(c, &auction.Event{ID: fmt.Sprint(i), Type: auction.EventNewTopBid}))
	}
	assert.Equal(t, domain.ErrConflict, repo.Insert(c, &auction.Event{ID: "0"}))

	res, err := repo.FindAll(c, 1, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "3", res[0].ID)
	assert.Equal(t, "2", res[1].ID)

	res, err = repo.FindAll(c, 4, 10)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "0", res[0].ID)

	res, err = repo.FindAll(c, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestEventRepoOrdersBySeq(t *testing.T) {
	c := ctx.Background()
	repo := NewEventRepo()

	// deliveries may land out of order
	for _, seq := range []int64{2, 1, 4, 3} {
		require.NoError(t, repo.Insert(c, &auction.Event{ID: fmt.Sprint(seq), Seq: seq}))
	}

	res, err := repo.FindAll(c, 0, 10)
	require.NoError(t, err)
	require.Len(t, res, 4)
	for i, want := range []int64{4, 3, 2, 1} {
		assert.Equal(t, want, res[i].Seq)
	}
}
