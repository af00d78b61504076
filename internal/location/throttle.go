package location

import (
	"context"
	"sync"
	"time"
)

// MemoryThrottle = ThrottleStore in-memory per proses. Hilang saat restart —
// efeknya cuma commit berikutnya datang lebih cepat, bukan kehilangan data.
// Kalau ingest jalan multi-replica, throttling-nya per replica; pakai
// cache.RedisThrottle kalau butuh koordinasi global.
type MemoryThrottle struct {
	interval time.Duration

	mu   sync.Mutex
	last map[string]time.Time

	now func() time.Time
}

func NewMemoryThrottle(interval time.Duration) *MemoryThrottle {
	return &MemoryThrottle{
		interval: interval,
		last:     make(map[string]time.Time),
		now:      time.Now,
	}
}

func (m *MemoryThrottle) TryAcquire(ctx context.Context, driverID string) (bool, func(), error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	prev, seen := m.last[driverID]
	if seen && now.Sub(prev) < m.interval {
		return false, nil, nil
	}

	// optimistis: majukan timestamp sebelum durable write jalan, supaya request
	// paralel untuk driver yang sama tidak ikut commit
	m.last[driverID] = now

	rollback := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !seen {
			delete(m.last, driverID)
			return
		}
		m.last[driverID] = prev
	}

	return true, rollback, nil
}

func (m *MemoryThrottle) Remaining(ctx context.Context, driverID string) (time.Duration, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	last, seen := m.last[driverID]
	if !seen {
		return 0, nil
	}
	remaining := m.interval - now.Sub(last)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}
