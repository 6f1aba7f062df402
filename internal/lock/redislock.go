package lock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned when no Redis client is attached.
var ErrNotConfigured = errors.New("lock: redis client not configured")

// Mutex is a Redis-backed mutual exclusion helper. It serializes operations
// that must not run concurrently across API instances, such as whole-catalog
// imports. A zero RetryEvery falls back to 50ms.
type Mutex struct {
	Client     *redis.Client
	RetryEvery time.Duration
}

// Do runs fn while holding the named lock. The lock carries a TTL so a
// crashed holder cannot wedge the key forever; release only deletes the key
// when the holder's own token is still present.
func (m Mutex) Do(ctx context.Context, name string, ttl time.Duration, fn func(context.Context) error) error {
	if m.Client == nil {
		return ErrNotConfigured
	}
	if fn == nil {
		return errors.New("lock: callback not provided")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	retry := m.RetryEvery
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}

	token := uuid.NewString()
	for {
		acquired, err := m.Client.SetNX(ctx, name, token, ttl).Result()
		if err != nil {
			return err
		}
		if acquired {
			break
		}
		timer := time.NewTimer(retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	defer m.unlock(context.Background(), name, token)
	return fn(ctx)
}

func (m Mutex) unlock(ctx context.Context, name, token string) {
	const release = `if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`
	if err := m.Client.Eval(ctx, release, []string{name}, token).Err(); err != nil {
		// Some test servers lack EVAL; fall back to a plain delete.
		if strings.Contains(strings.ToLower(err.Error()), "unknown command") {
			_ = m.Client.Del(ctx, name).Err()
		}
	}
}
