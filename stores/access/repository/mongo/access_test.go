package mongo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/service/query"
	mQuery "github.com/x-xyz/goauction/service/query/mocks"
)

type accessRepoSuite struct {
	suite.Suite

	q   *mQuery.Mongo
	im  *impl
	now time.Time
}

func TestAccessRepoSuite(t *testing.T) {
	suite.Run(t, new(accessRepoSuite))
}

func (s *accessRepoSuite) SetupTest() {
	s.q = mQuery.NewMongo(s.T())
	s.now = time.Unix(1660000000, 0)
	s.im = &impl{q: s.q, now: func() time.Time { return s.now }}
}

func (s *accessRepoSuite) TestGet() {
	c := ctx.Background()
	s.q.On("FindOne", c, domain.TableAccessHolders, bson.M{"_id": holderDocId}, mock.AnythingOfType("*mongo.holderDoc")).
		Run(func(args mock.Arguments) {
			doc := args.Get(3).(*holderDoc)
			doc.Holder = "0xabc"
			doc.UpdatedAt = s.now
		}).
		Return(nil).Once()

	res, err := s.im.Get(c)
	s.Require().NoError(err)
	s.Equal(domain.Address("0xabc"), res.Holder)
	s.Equal(s.now, res.UpdatedAt)
	s.True(res.IsHeld())
}

func (s *accessRepoSuite) TestGetNotFound() {
	c := ctx.Background()
	s.q.On("FindOne", c, domain.TableAccessHolders, mock.Anything, mock.Anything).Return(query.ErrNotFound).Once()

	_, err := s.im.Get(c)
	s.Equal(domain.ErrNotFound, err)
}

func (s *accessRepoSuite) TestGetError() {
	c := ctx.Background()
	s.q.On("FindOne", c, domain.TableAccessHolders, mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

	_, err := s.im.Get(c)
	s.EqualError(err, "boom")
}

func (s *accessRepoSuite) TestSetLowercases() {
	c := ctx.Background()
	s.q.On("Upsert", c, domain.TableAccessHolders, bson.M{"_id": holderDocId}, &holderDoc{
		ID:        holderDocId,
		Holder:    "0xabcdef",
		UpdatedAt: s.now,
	}).Return(nil).Once()

	s.NoError(s.im.Set(c, "0xABCDEF"))
}
