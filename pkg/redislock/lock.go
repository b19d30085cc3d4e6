// Package redislock birden çok örnek arasında tek çalıştırma için basit bir
// SET NX kilidi sağlar.
package redislock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNotHeld = errors.New("kilit bu örnekte değil")

// releaseScript kilidi yalnızca token eşleşiyorsa siler.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type Locker struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix}
}

type Lock struct {
	client *redis.Client
	key    string
	token  string
}

// TryLock kilidi ttl süresiyle almaya çalışır. Başka bir örnek tutuyorsa (nil, false, nil) döner.
func (l *Locker) TryLock(ctx context.Context, name string, ttl time.Duration) (*Lock, bool, error) {
	key := l.prefix + name
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return &Lock{client: l.client, key: key, token: token}, true, nil
}

func (lk *Lock) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, lk.client, []string{lk.key}, lk.token).Int64()
	if err == redis.Nil {
		return ErrNotHeld
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotHeld
	}
	return nil
}
