package redis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/service/redis"
	mRedis "github.com/x-xyz/goauction/service/redis/mocks"
)

type nonceSuite struct {
	suite.Suite

	c     ctx.Ctx
	redis *mRedis.Service
	im    domain.NonceRepo
}

func TestNonceSuite(t *testing.T) {
	suite.Run(t, new(nonceSuite))
}

func (s *nonceSuite) SetupTest() {
	s.c = ctx.Background()
	s.redis = mRedis.NewService(s.T())
	s.im = New(s.redis, 5*time.Minute)
}

func (s *nonceSuite) TestStore() {
	s.redis.On("Set", s.c, "nonce:0xabc", []byte("n1"), 5*time.Minute).Return(nil).Once()
	s.NoError(s.im.Store(s.c, "0xABC", "n1"))
}

func (s *nonceSuite) TestTake() {
	s.redis.On("ScriptDo", s.c, redis.GetAndDelete, []interface{}{"nonce:0xabc"}).Return([]byte("n1"), nil).Once()
	nonce, err := s.im.Take(s.c, "0xAbc")
	s.NoError(err)
	s.Equal("n1", nonce)
}

func (s *nonceSuite) TestTakeMissing() {
	s.redis.On("ScriptDo", s.c, redis.GetAndDelete, []interface{}{"nonce:0xabc"}).Return(nil, redis.ErrNotFound).Once()
	_, err := s.im.Take(s.c, "0xabc")
	s.Equal(domain.ErrNotFound, err)
}

func (s *nonceSuite) TestTakeError() {
	s.redis.On("ScriptDo", s.c, redis.GetAndDelete, []interface{}{"nonce:0xabc"}).Return(nil, errors.New("conn refused")).Once()
	_, err := s.im.Take(s.c, "0xabc")
	s.EqualError(err, "conn refused")
}
