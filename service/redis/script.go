package redis

import (
	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain/keys"
)

// ScriptHdl is a lua script bound to a fixed number of keys
type ScriptHdl struct {
	keyCount int
	script   *redis.Script
}

func NewScript(keyCount int, src string) *ScriptHdl {
	return &ScriptHdl{
		keyCount: keyCount,
		script:   redis.NewScript(keyCount, src),
	}
}

// Do runs the script by hash first and falls back to EVAL. A nil reply becomes ErrNotFound.
func (h *ScriptHdl) Do(conn redis.Conn, keysAndArgs ...interface{}) (interface{}, error) {
	reply, err := h.script.Do(conn, keysAndArgs...)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, ErrNotFound
	}
	return reply, nil
}

func (h *ScriptHdl) prefix(keysAndArgs ...interface{}) string {
	if h.keyCount == 0 || len(keysAndArgs) == 0 {
		return metrics.TagValueNA
	}
	if key, ok := keysAndArgs[0].(string); ok {
		return keys.GetPrefix(key)
	}
	return metrics.TagValueNA
}

var (
	// CompareAndDelete deletes KEYS[1] only while it still holds ARGV[1]
	CompareAndDelete = NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

	// GetAndDelete returns KEYS[1] and removes it in one step
	GetAndDelete = NewScript(1, `
local v = redis.call("GET", KEYS[1])
if v then
	redis.call("DEL", KEYS[1])
end
return v
`)
)
