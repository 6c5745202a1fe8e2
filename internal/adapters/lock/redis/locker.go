package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/ports/lock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "lock:"

// ErrLockNotHeld: al liberar, la clave ya expiró o es de otro proceso.
var ErrLockNotHeld = errors.New("lock not held")

// borra solo si el valor sigue siendo nuestro token
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

type Locker struct {
	rdb    redis.UniversalClient
	prefix string
	log    logger.Logger
}

var _ lock.Locker = (*Locker)(nil)

// NewClient abre la conexión desde una URL redis://... y hace ping.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("redis url is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

func NewLocker(rdb redis.UniversalClient, prefix string, log logger.Logger) *Locker {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Locker{rdb: rdb, prefix: prefix, log: log}
}

// Key es la clave Redis real de un lock.
func (l *Locker) Key(key string) string {
	return l.prefix + key
}

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	lockKey := l.Key(key)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	l.log.Debug("lock acquired", map[string]any{"key": lockKey, "ttl": ttl.String()})

	release := func(ctx context.Context) error {
		n, err := releaseScript.Run(ctx, l.rdb, []string{lockKey}, token).Int64()
		if err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		if n == 0 {
			return ErrLockNotHeld
		}
		l.log.Debug("lock released", map[string]any{"key": lockKey})
		return nil
	}
	return release, true, nil
}
