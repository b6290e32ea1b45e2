package mongo

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
	mQuery "github.com/x-xyz/goauction/service/query/mocks"
)

func TestEventInsert(t *testing.T) {
	c := ctx.Background()
	q := mQuery.NewMongo(t)
	repo := NewEventRepo(q)

	e := &auction.Event{ID: "e1", Type: auction.EventAuctionCancelled}
	q.On("Insert", c, domain.TableAuctionEvents, e).Return(nil).Once()
	require.NoError(t, repo.Insert(c, e))

	q.On("Insert", c, domain.TableAuctionEvents, e).Return(query.ErrDuplicateKey).Once()
	require.Equal(t, domain.ErrConflict, repo.Insert(c, e))
}

func TestEventFindAll(t *testing.T) {
	c := ctx.Background()
	q := mQuery.NewMongo(t)
	repo := NewEventRepo(q)

	q.On("Search", c, domain.TableAuctionEvents, 20, 10, "-seq", bson.M{"seq": bson.M{"$gt": 0}}, mock.Anything).
		Run(func(args mock.Arguments) {
			res := args.Get(6).(*[]*auction.Event)
			*res = append(*res, &auction.Event{ID: "e9"})
		}).
		Return(nil).Once()

	res, err := repo.FindAll(c, 20, 10)
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, "e9", res[0].ID)
}

func TestEnsureIndexes(t *testing.T) {
	c := ctx.Background()
	q := mQuery.NewMongo(t)
	q.On("EnsureIndexes", c, domain.TableAuctionEvents, []query.Index{
		{Keys: []string{"seq"}, Unique: true},
		{Keys: []string{"round", "seq"}},
	}).Return(nil).Once()
	require.NoError(t, EnsureIndexes(c, q))
}
