package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ShubhamS40/DisplayOnWheels/internal/location"
)

// Hash Redis berisi sample terakhir per driver: field = driverId, value = JSON.
const driverLocationsKey = "driverLocations"

// batas waktu per call ke Redis; cache lambat tidak boleh ikut
// melambatkan request ingest
const callTimeout = 2 * time.Second

// RedisStore = implementasi location.EphemeralStore di atas go-redis.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  callTimeout,
		ReadTimeout:  callTimeout,
		WriteTimeout: callTimeout,
	})
	return &RedisStore{rdb: rdb}
}

// Ping dipakai startup check di main.
func (s *RedisStore) Ping(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return s.rdb.Ping(cctx).Err()
}

// Client expose koneksi untuk komponen lain yang pakai Redis yang sama
// (contoh: RedisThrottle).
func (s *RedisStore) Client() *redis.Client {
	return s.rdb
}

func (s *RedisStore) Set(ctx context.Context, sample location.LocationSample) error {
	b, err := json.Marshal(sample)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	if err := s.rdb.HSet(cctx, driverLocationsKey, sample.DriverID, b).Err(); err != nil {
		return fmt.Errorf("%w: %v", location.ErrCacheUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, driverID string) (location.LocationSample, bool, error) {
	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	val, err := s.rdb.HGet(cctx, driverLocationsKey, driverID).Bytes()
	if err == redis.Nil {
		return location.LocationSample{}, false, nil
	}
	if err != nil {
		return location.LocationSample{}, false, fmt.Errorf("%w: %v", location.ErrCacheUnavailable, err)
	}

	var sample location.LocationSample
	if err := json.Unmarshal(val, &sample); err != nil {
		return location.LocationSample{}, false, fmt.Errorf("sample rusak untuk driver %s: %v", driverID, err)
	}
	return sample, true, nil
}

func (s *RedisStore) GetAll(ctx context.Context) (map[string]location.LocationSample, error) {
	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	raw, err := s.rdb.HGetAll(cctx, driverLocationsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", location.ErrCacheUnavailable, err)
	}

	samples := make(map[string]location.LocationSample, len(raw))
	for driverID, val := range raw {
		var sample location.LocationSample
		if err := json.Unmarshal([]byte(val), &sample); err != nil {
			// entry rusak di-skip, sisanya tetap jalan
			log.Printf("cache: skip sample rusak untuk driver %s: %v", driverID, err)
			continue
		}
		samples[driverID] = sample
	}
	return samples, nil
}

func (s *RedisStore) BatchGet(ctx context.Context, driverIDs []string) (map[string]location.LocationSample, error) {
	if len(driverIDs) == 0 {
		return map[string]location.LocationSample{}, nil
	}

	cctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	vals, err := s.rdb.HMGet(cctx, driverLocationsKey, driverIDs...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", location.ErrCacheUnavailable, err)
	}

	samples := make(map[string]location.LocationSample, len(driverIDs))
	for i, v := range vals {
		if v == nil {
			continue // driver belum pernah ping
		}
		str, ok := v.(string)
		if !ok {
			continue
		}
		var sample location.LocationSample
		if err := json.Unmarshal([]byte(str), &sample); err != nil {
			log.Printf("cache: skip sample rusak untuk driver %s: %v", driverIDs[i], err)
			continue
		}
		samples[driverIDs[i]] = sample
	}
	return samples, nil
}
