package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/custody"
	"github.com/x-xyz/goauction/service/query"
	mQuery "github.com/x-xyz/goauction/service/query/mocks"
)

var item = custody.Item{ChainId: 1, Contract: "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D", TokenId: "7"}

type custodyRepoSuite struct {
	suite.Suite

	c   ctx.Ctx
	q   *mQuery.Mongo
	im  custody.Repo
	slr bson.M
}

func TestCustodyRepoSuite(t *testing.T) {
	suite.Run(t, new(custodyRepoSuite))
}

func (s *custodyRepoSuite) SetupTest() {
	s.c = ctx.Background()
	s.q = mQuery.NewMongo(s.T())
	s.im = New(s.q)
	s.slr = bson.M{"chainId": domain.ChainId(1), "contract": domain.Address("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"), "tokenId": domain.TokenId("7")}
}

func (s *custodyRepoSuite) TestEnsureIndexes() {
	s.q.On("EnsureIndexes", s.c, domain.TableCustodyItems, []query.Index{{Keys: []string{"chainId", "contract", "tokenId"}, Unique: true}}).Return(nil).Once()
	s.NoError(EnsureIndexes(s.c, s.q))
}

func (s *custodyRepoSuite) TestInsert() {
	at := time.Unix(1660000000, 0)
	s.q.On("Insert", s.c, domain.TableCustodyItems, &custody.Holding{Item: item.Normalize(), Depositor: "0xabc", ReceivedAt: at}).Return(nil).Once()
	s.NoError(s.im.Insert(s.c, &custody.Holding{Item: item, Depositor: "0xabc", ReceivedAt: at}))
}

func (s *custodyRepoSuite) TestInsertDuplicate() {
	s.q.On("Insert", s.c, domain.TableCustodyItems, mock.Anything).Return(query.ErrDuplicateKey).Once()
	s.Equal(domain.ErrConflict, s.im.Insert(s.c, &custody.Holding{Item: item}))
}

func (s *custodyRepoSuite) TestFindOne() {
	s.q.On("FindOne", s.c, domain.TableCustodyItems, s.slr, mock.AnythingOfType("*custody.Holding")).
		Run(func(args mock.Arguments) {
			args.Get(3).(*custody.Holding).Item = item.Normalize()
		}).
		Return(nil).Once()

	res, err := s.im.FindOne(s.c, item)
	s.NoError(err)
	s.Equal(item.Normalize(), res.Item)
}

func (s *custodyRepoSuite) TestFindOneMissing() {
	s.q.On("FindOne", s.c, domain.TableCustodyItems, s.slr, mock.Anything).Return(query.ErrNotFound).Once()
	_, err := s.im.FindOne(s.c, item)
	s.Equal(domain.ErrNotFound, err)
}

func (s *custodyRepoSuite) TestFindAll() {
	s.q.On("Search", s.c, domain.TableCustodyItems, 0, 0, "receivedAt", bson.M{"contract": bson.M{"$exists": true}}, mock.Anything).
		Run(func(args mock.Arguments) {
			res := args.Get(6).(*[]*custody.Holding)
			*res = append(*res, &custody.Holding{Item: item})
		}).
		Return(nil).Once()

	res, err := s.im.FindAll(s.c)
	s.NoError(err)
	s.Len(res, 1)
}

func (s *custodyRepoSuite) TestRemove() {
	s.q.On("Remove", s.c, domain.TableCustodyItems, s.slr).Return(nil).Once()
	s.NoError(s.im.Remove(s.c, item))

	s.q.On("Remove", s.c, domain.TableCustodyItems, s.slr).Return(query.ErrNotFound).Once()
	s.Equal(domain.ErrNotFound, s.im.Remove(s.c, item))
}
