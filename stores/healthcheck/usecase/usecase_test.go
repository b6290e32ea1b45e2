package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/x-xyz/goauction/base/ctx"
	mHc "github.com/x-xyz/goauction/domain/healthcheck/mocks"
)

func TestCheck(t *testing.T) {
	repo := &mHc.HealthCheckRepo{}
	repo.On("PingDB", mock.Anything).Return(nil)
	repo.On("PingCache", mock.Anything).Return(nil)

	assert.NoError(t, New(repo).Check(ctx.Background()))
	repo.AssertExpectations(t)
}

func TestCheckReportsFailingComponent(t *testing.T) {
	errDown := errors.New("down")

	repo := &mHc.HealthCheckRepo{}
	repo.On("PingDB", mock.Anything).Return(errDown)
	err := New(repo).Check(ctx.Background())
	assert.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), "mongo")
	repo.AssertNotCalled(t, "PingCache", mock.Anything)

	repo = &mHc.HealthCheckRepo{}
	repo.On("PingDB", mock.Anything).Return(nil)
	repo.On("PingCache", mock.Anything).Return(errDown)
	err = New(repo).Check(ctx.Background())
	assert.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), "redis")
}
