package lock

import (
	"context"
	"time"
)

// Locker es un lock distribuido best-effort (p.ej. para no solapar scans batch).
// TryLock devuelve ok=false si otro proceso lo tiene; release libera solo si sigue siendo nuestro.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}
