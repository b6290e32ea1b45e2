package redis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/cache/provider"
	"github.com/x-xyz/goauction/service/redis"
	mockRedis "github.com/x-xyz/goauction/service/redis/mocks"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im    *impl
	redis *mockRedis.Service
}

func (ts *testsuite) SetupTest() {
	ts.redis = &mockRedis.Service{}
	ts.im = NewRedis(ts.redis).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.redis.AssertExpectations(ts.T())
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.redis.On("Set", mockCtx, k, v, time.Second).Return(nil).Once()
	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
}

func (ts *testsuite) TestSetForever() {
	ts.redis.On("Set", mockCtx, "key", []byte("v"), redis.Forever).Return(nil).Once()
	ts.NoError(ts.im.Set(mockCtx, "key", []byte("v"), 0))
}

func (ts *testsuite) TestGet() {
	k := "key"
	v := []byte("value")

	ts.redis.On("Get", mockCtx, k).Return(v, nil).Once()
	ts.redis.On("TTL", mockCtx, k).Return(10, nil).Once()

	val, ttl, err := ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(v, val)
	ts.Equal(10*time.Second, ttl)
}

func (ts *testsuite) TestGetNotFound() {
	ts.redis.On("Get", mockCtx, "key").Return(nil, redis.ErrNotFound).Once()

	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestGetExpiredBetweenCalls() {
	ts.redis.On("Get", mockCtx, "key").Return([]byte("v"), nil).Once()
	ts.redis.On("TTL", mockCtx, "key").Return(-2, redis.ErrNotFound).Once()

	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestGetError() {
	errBoom := errors.New("boom")
	ts.redis.On("Get", mockCtx, "key").Return(nil, errBoom).Once()

	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(errBoom, err)
}

func (ts *testsuite) TestDel() {
	ts.redis.On("Del", mockCtx, []string{"key"}).Return(1, nil).Once()
	ts.NoError(ts.im.Del(mockCtx, "key"))
}
