package redislock

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

func TestLocker(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR tanımlı değil")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	locker := New(client, "takvim-test:"+time.Now().Format("150405.000000")+":")

	first, ok, err := locker.TryLock(ctx, "sweep", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first TryLock: ok=%v err=%v", ok, err)
	}
	if _, ok, err := locker.TryLock(ctx, "sweep", time.Minute); err != nil || ok {
		t.Fatalf("second TryLock should fail: ok=%v err=%v", ok, err)
	}
	if err := first.Release(ctx); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := first.Release(ctx); !errors.Is(err, ErrNotHeld) {
		t.Fatalf("second Release = %v, want ErrNotHeld", err)
	}

	short, ok, err := locker.TryLock(ctx, "expiring", 50*time.Millisecond)
	if err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	time.Sleep(100 * time.Millisecond)
	other, ok, err := locker.TryLock(ctx, "expiring", time.Minute)
	if err != nil || !ok {
		t.Fatalf("lock should be free after ttl: ok=%v err=%v", ok, err)
	}
	if err := short.Release(ctx); !errors.Is(err, ErrNotHeld) {
		t.Errorf("expired holder released someone else's lock: %v", err)
	}
	_ = other.Release(ctx)
}
