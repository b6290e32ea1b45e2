package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/x-xyz/goauction/base/ctx"
	mRedis "github.com/x-xyz/goauction/service/redis/mocks"
)

func TestPingCache(t *testing.T) {
	r := mRedis.NewService(t)
	r.On("Set", mock.Anything, "healthcheck:testset", []byte("1"), 30*time.Second).Return(nil).Once()
	repo := New(nil, r)

	assert.NoError(t, repo.PingCache(ctx.Background()))

	errDown := errors.New("connection refused")
	r.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errDown).Once()
	assert.Equal(t, errDown, repo.PingCache(ctx.Background()))
}

func TestPingDBWithoutMongo(t *testing.T) {
	repo := New(nil, mRedis.NewService(t))
	assert.NoError(t, repo.PingDB(ctx.Background()))
}
