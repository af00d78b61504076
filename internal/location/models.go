package location

import (
	"context"
	"errors"
	"time"
)

// LocationSample = satu entry di ephemeral store, full overwrite tiap ping.
// Timestamp di-set oleh server saat request diterima, bukan dari client.
type LocationSample struct {
	DriverID  string  `json:"driverId"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Timestamp string  `json:"timestamp"` // RFC3339
}

// CapturedAt parses the sample timestamp. ok == false kalau kosong/rusak.
func (s LocationSample) CapturedAt() (time.Time, bool) {
	if s.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EphemeralStore = kontrak ke cache lokasi (implementasi Redis di internal/cache).
// Semua call wajib pakai timeout terbatas di sisi implementasi.
type EphemeralStore interface {
	// Set overwrites the driver's latest sample.
	Set(ctx context.Context, sample LocationSample) error
	// Get returns the driver's sample; found == false kalau belum ada.
	Get(ctx context.Context, driverID string) (sample LocationSample, found bool, err error)
	// GetAll returns every stored sample keyed by driver id.
	GetAll(ctx context.Context) (map[string]LocationSample, error)
	// BatchGet returns samples for the given driver ids; missing ids absent dari map.
	BatchGet(ctx context.Context, driverIDs []string) (map[string]LocationSample, error)
}

// ThrottleStore membatasi frekuensi durable commit per driver.
type ThrottleStore interface {
	// TryAcquire advances the throttle window optimistically. ok == true berarti
	// window sudah lewat dan caller boleh commit; rollback mengembalikan state
	// lama kalau commit-nya gagal, supaya ping berikutnya langsung retry.
	TryAcquire(ctx context.Context, driverID string) (ok bool, rollback func(), err error)
	// Remaining reports how long until the next commit is eligible (0 kalau sudah boleh).
	Remaining(ctx context.Context, driverID string) (time.Duration, error)
}

// Error kategori subsistem lokasi. Cache error diserap (log saja),
// durable error dipropagasi ke caller.
var (
	ErrCacheUnavailable = errors.New("location cache unavailable")
	ErrDurableWrite     = errors.New("durable location write failed")
)

// EnrichedDriverLocation = hasil join sample + profil driver (+ konteks campaign
// untuk company view). Dibuat per request, tidak pernah disimpan.
type EnrichedDriverLocation struct {
	DriverID      string           `json:"driverId"`
	Name          string           `json:"name"`
	Phone         string           `json:"phone,omitempty"`
	VehicleNumber string           `json:"vehicleNumber,omitempty"`
	VehicleType   string           `json:"vehicleType,omitempty"`
	IsActive      bool             `json:"isActive"`
	IsApproved    *bool            `json:"isApproved,omitempty"` // hanya admin view
	Lat           float64          `json:"lat"`
	Lng           float64          `json:"lng"`
	Timestamp     string           `json:"timestamp,omitempty"`
	LastUpdateAgo string           `json:"lastUpdateAgo"`
	Campaign      *CampaignContext `json:"campaign,omitempty"` // hanya company view
}

// CampaignContext = potongan info assignment yang ditempel di company view.
type CampaignContext struct {
	CampaignID string    `json:"campaignId"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	AssignedAt time.Time `json:"assignedAt"`
}

// ViewMetadata dihitung dari list final (setelah filter), bukan dari scope awal.
type ViewMetadata struct {
	TotalDrivers  int    `json:"totalDrivers"`
	ActiveDrivers int    `json:"activeDrivers"`
	Timestamp     string `json:"timestamp"`
}
