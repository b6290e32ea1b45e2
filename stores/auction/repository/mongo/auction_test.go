package mongo

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/amount"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
	mQuery "github.com/x-xyz/goauction/service/query/mocks"
)

type auctionRepoSuite struct {
	suite.Suite

	c  ctx.Ctx
	q  *mQuery.Mongo
	im auction.Repo
}

func TestAuctionRepoSuite(t *testing.T) {
	suite.Run(t, new(auctionRepoSuite))
}

func (s *auctionRepoSuite) SetupTest() {
	s.c = ctx.Background()
	s.q = mQuery.NewMongo(s.T())
	s.im = New(s.q)
}

func (s *auctionRepoSuite) TestSaveTopBid() {
	deadline := time.Unix(1660000900, 0)
	dec, err := amount.ToDecimal128(big.NewInt(2040))
	s.Require().NoError(err)

	s.q.On("Upsert", s.c, domain.TableAuctions, bson.M{"_id": recordId}, &recordDoc{
		ID:                recordId,
		Round:             "r1",
		MinBidIncreaseBps: 200,
		Beneficiary:       "0xbeef",
		Deadline:          deadline,
		LeaderType:        leaderTopBid,
		Bidder:            "0xabc",
		Amount:            dec,
		EventSeq:          12,
	}).Return(nil).Once()

	s.NoError(s.im.Save(s.c, &auction.Record{
		Round:    "r1",
		Config:   auction.Config{MinBidIncreaseBps: 200, Beneficiary: "0xBEEF"},
		State:    auction.State{Deadline: deadline, Leader: auction.TopBid{Bidder: "0xABC", Bid: big.NewInt(2040)}},
		EventSeq: 12,
	}))
}

func (s *auctionRepoSuite) TestSaveError() {
	s.q.On("Upsert", s.c, domain.TableAuctions, mock.Anything, mock.Anything).Return(errors.New("write conflict")).Once()
	s.EqualError(s.im.Save(s.c, &auction.Record{State: auction.InactiveState()}), "write conflict")
}

func (s *auctionRepoSuite) TestGet() {
	s.q.On("FindOne", s.c, domain.TableAuctions, bson.M{"_id": recordId}, mock.AnythingOfType("*mongo.recordDoc")).
		Run(func(args mock.Arguments) {
			doc := args.Get(3).(*recordDoc)
			dec, err := amount.ToDecimal128(big.NewInt(7))
			s.Require().NoError(err)
			doc.Round = "r2"
			doc.MinBidIncreaseBps = 500
			doc.LeaderType = leaderNoBid
			doc.Amount = dec
			doc.Deadline = time.Unix(0, 0)
			doc.EventSeq = 3
		}).
		Return(nil).Once()

	r, err := s.im.Get(s.c)
	s.Require().NoError(err)
	s.Equal("r2", r.Round)
	s.Equal(int64(500), r.Config.MinBidIncreaseBps)
	s.True(r.State.Deadline.IsZero())
	s.IsType(auction.NoBid{}, r.State.Leader)
	s.Equal("7", r.State.Leader.Amount().String())
	s.Equal(int64(3), r.EventSeq)
}

func (s *auctionRepoSuite) TestGetTopBid() {
	s.q.On("FindOne", s.c, domain.TableAuctions, bson.M{"_id": recordId}, mock.Anything).
		Run(func(args mock.Arguments) {
			doc := args.Get(3).(*recordDoc)
			dec, err := amount.ToDecimal128(big.NewInt(99))
			s.Require().NoError(err)
			doc.LeaderType = leaderTopBid
			doc.Bidder = "0xabc"
			doc.Amount = dec
			doc.Deadline = time.Unix(1660000900, 0)
		}).
		Return(nil).Once()

	r, err := s.im.Get(s.c)
	s.Require().NoError(err)
	top, ok := r.State.Leader.(auction.TopBid)
	s.Require().True(ok)
	s.Equal(domain.Address("0xabc"), top.Bidder)
	s.Equal("99", top.Bid.String())
	s.Equal(int64(1660000900), r.State.Deadline.Unix())
}

func (s *auctionRepoSuite) TestGetNotFound() {
	s.q.On("FindOne", s.c, domain.TableAuctions, mock.Anything, mock.Anything).Return(query.ErrNotFound).Once()
	_, err := s.im.Get(s.c)
	s.Equal(domain.ErrNotFound, err)
}
