package location

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ShubhamS40/DisplayOnWheels/internal/campaign"
	"github.com/ShubhamS40/DisplayOnWheels/internal/company"
	"github.com/ShubhamS40/DisplayOnWheels/internal/driver"
)

var testDBSeq int64

// setupTestDB opens an in-memory sqlite DB and auto-migrates all models.
// DSN unik per test supaya data tidak bocor antar test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:location_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(gsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite memory DB: %v", err)
	}

	if err := db.AutoMigrate(
		&driver.Driver{},
		&company.Company{},
		&company.Admin{},
		&campaign.RechargePlan{},
		&campaign.Campaign{},
		&campaign.CampaignDriver{},
	); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}

	return db
}

// fakeCache = EphemeralStore in-memory untuk test, bisa dipaksa gagal.
type fakeCache struct {
	samples map[string]LocationSample
	failSet bool
	failAll bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{samples: make(map[string]LocationSample)}
}

func (f *fakeCache) Set(ctx context.Context, sample LocationSample) error {
	if f.failSet {
		return ErrCacheUnavailable
	}
	f.samples[sample.DriverID] = sample
	return nil
}

func (f *fakeCache) Get(ctx context.Context, driverID string) (LocationSample, bool, error) {
	s, ok := f.samples[driverID]
	return s, ok, nil
}

func (f *fakeCache) GetAll(ctx context.Context) (map[string]LocationSample, error) {
	if f.failAll {
		return nil, ErrCacheUnavailable
	}
	out := make(map[string]LocationSample, len(f.samples))
	for k, v := range f.samples {
		out[k] = v
	}
	return out, nil
}

func (f *fakeCache) BatchGet(ctx context.Context, driverIDs []string) (map[string]LocationSample, error) {
	if f.failAll {
		return nil, ErrCacheUnavailable
	}
	out := make(map[string]LocationSample, len(driverIDs))
	for _, id := range driverIDs {
		if s, ok := f.samples[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

// fakeClock supaya throttle dan timestamp deterministik
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}

// newTestHandler wires Handler dengan fake cache + memory throttle + fake clock.
func newTestHandler(t *testing.T, interval time.Duration) (*Handler, *fakeCache, *fakeClock) {
	t.Helper()

	db := setupTestDB(t)
	cache := newFakeCache()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}

	throttle := NewMemoryThrottle(interval)
	throttle.now = clock.Now

	h := NewHandler(db, cache, throttle)
	h.now = clock.Now

	return h, cache, clock
}

func postUpdateLocation(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/update-location", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.UpdateLocation(c)
	return w
}
