package redisclient

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolSize(t *testing.T) {
	idle, active := Config{}.poolSize()
	assert.Equal(t, 200, idle)
	assert.Equal(t, 1024, active)

	idle, active = Config{PoolMultiplier: 8}.poolSize()
	assert.Equal(t, runtime.NumCPU()*8, active)
	assert.Equal(t, (runtime.NumCPU()*8+3)/4, idle)

	idle, active = Config{PoolMultiplier: 0.01}.poolSize()
	assert.Equal(t, 1, active)
	assert.Equal(t, 1, idle)
}

func TestConnectRedisUnreachable(t *testing.T) {
	_, err := ConnectRedis(context.Background(), Config{URI: "127.0.0.1:1"})
	assert.Error(t, err)
}
