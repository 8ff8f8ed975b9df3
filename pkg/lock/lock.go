package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker serialises short critical sections keyed by an arbitrary string.
// The booking path keys locks by hospital|doctor|date|time so concurrent
// attempts on the same slot take turns.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// SlotKey builds the canonical lock key for one bookable slot.
func SlotKey(hospitalID, doctorID, date, timeLabel string) string {
	return fmt.Sprintf("slot:%s|%s|%s|%s", hospitalID, doctorID, date, timeLabel)
}

const (
	redisLockTTL  = 5 * time.Second
	redisLockWait = 2 * time.Second
	redisRetry    = 20 * time.Millisecond
)

type redisLocker struct {
	client *redis.Client
}

// NewRedisLocker returns a Locker backed by SET NX with a TTL, so a
// crashed holder cannot wedge a slot for longer than the TTL.
func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	deadline := time.Now().Add(redisLockWait)
	for {
		ok, err := l.client.SetNX(ctx, key, "1", redisLockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return func() {
				l.client.Del(context.Background(), key)
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for lock %s", key)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(redisRetry):
		}
	}
}

type localLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocalLocker returns an in-process Locker for single-node deployments
// and tests.
func NewLocalLocker() Locker {
	return &localLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *localLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
