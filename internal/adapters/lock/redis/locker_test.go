package redis_test

import (
	"testing"

	redislock "pet-lost-found/internal/adapters/lock/redis"
	"pet-lost-found/internal/domain/matching"

	"github.com/stretchr/testify/assert"
)

func TestLocker_KeyAddsPrefixOnce(t *testing.T) {
	l := redislock.NewLocker(nil, "lostfound:", nil)
	assert.Equal(t, "lostfound:scan", l.Key(matching.ScanLockKey))

	assert.Equal(t, "lock:scan", redislock.NewLocker(nil, "", nil).Key("scan"))
}
