package memory

import (
	"context"
	"sync"
	"time"

	"pet-lost-found/internal/ports/lock"
)

// Locker es un lock.Locker de un solo proceso.
type Locker struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

var _ lock.Locker = (*Locker)(nil)

func NewLocker() *Locker {
	return &Locker{held: make(map[string]time.Time), now: time.Now}
}

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if exp, ok := l.held[key]; ok && now.Before(exp) {
		return nil, false, nil
	}
	exp := now.Add(ttl)
	l.held[key] = exp

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		// solo si sigue siendo nuestro
		if cur, ok := l.held[key]; ok && cur.Equal(exp) {
			delete(l.held, key)
		}
		return nil
	}
	return release, true, nil
}
