package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "locationThrottle:"

// RedisThrottle = location.ThrottleStore berbasis SET NX PX, untuk deployment
// multi-replica yang butuh throttle terkoordinasi global. Replica mana pun
// yang menang SET NX yang boleh commit; sisanya skip sampai key expire.
type RedisThrottle struct {
	rdb      *redis.Client
	interval time.Duration
}

func NewRedisThrottle(rdb *redis.Client, interval time.Duration) *RedisThrottle {
	return &RedisThrottle{rdb: rdb, interval: interval}
}

func (t *RedisThrottle) key(driverID string) string {
	return throttleKeyPrefix + driverID
}

func (t *RedisThrottle) TryAcquire(ctx context.Context, driverID string) (bool, func(), error) {
	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	ok, err := t.rdb.SetNX(cctx, t.key(driverID), time.Now().UnixMilli(), t.interval).Result()
	if err != nil {
		return false, nil, fmt.Errorf("redis throttle: %v", err)
	}
	if !ok {
		return false, nil, nil
	}

	// rollback = hapus key; TTL lama tidak bisa dikembalikan persis, tapi
	// efeknya sama: ping berikutnya langsung boleh retry commit
	rollback := func() {
		dctx, dcancel := context.WithTimeout(context.Background(), callTimeout)
		defer dcancel()
		t.rdb.Del(dctx, t.key(driverID))
	}
	return true, rollback, nil
}

func (t *RedisThrottle) Remaining(ctx context.Context, driverID string) (time.Duration, error) {
	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	ttl, err := t.rdb.PTTL(cctx, t.key(driverID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis throttle: %v", err)
	}
	if ttl < 0 {
		// -2 = key tidak ada, -1 = tanpa TTL; dua-duanya berarti boleh commit
		return 0, nil
	}
	return ttl, nil
}
