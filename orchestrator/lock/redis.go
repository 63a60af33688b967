package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLock coordinates checkpoint-append ordering across processes
// cooperating on the same --run-id via a Redis SET NX lock. It only
// serializes the critical section; it does not change the checkpoint
// file's format or its last-writer-wins semantics on load.
type RedisLock struct {
	client *redis.Client
	key    string
	token  string
	ttl    time.Duration
}

// NewRedisLock builds a lock scoped to runID. client must already be
// connected to the coordinating Redis instance.
func NewRedisLock(client *redis.Client, runID string, ttl time.Duration) *RedisLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLock{
		client: client,
		key:    "agentbench:checkpoint-lock:" + runID,
		ttl:    ttl,
	}
}

// Lock blocks (spinning with a short backoff) until the distributed lock
// is acquired. It is deliberately simple: this guards a fast in-process
// append, not a long-held resource.
func (l *RedisLock) Lock() {
	token := uuid.NewString()
	ctx := context.Background()
	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err == nil && ok {
			l.token = token
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// Unlock releases the lock if it is still held by this holder's token.
func (l *RedisLock) Unlock() {
	ctx := context.Background()
	val, err := l.client.Get(ctx, l.key).Result()
	if err == nil && val == l.token {
		l.client.Del(ctx, l.key)
	}
}
