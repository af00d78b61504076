package location

import (
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ShubhamS40/DisplayOnWheels/internal/driver"
)

// Handler untuk ingest + live-location views
type Handler struct {
	DB       *gorm.DB
	Cache    EphemeralStore
	Throttle ThrottleStore

	now func() time.Time
}

func NewHandler(db *gorm.DB, cache EphemeralStore, throttle ThrottleStore) *Handler {
	return &Handler{DB: db, Cache: cache, Throttle: throttle, now: time.Now}
}

func (h *Handler) RegisterDriverRoutes(r gin.IRoutes) {
	r.POST("/update-location", h.UpdateLocation)
}

func (h *Handler) RegisterAdminRoutes(r gin.IRoutes) {
	r.GET("/all-drivers-locations", h.AdminDriversLocations)
}

func (h *Handler) RegisterCompanyRoutes(r gin.IRoutes) {
	r.GET("/:companyId/drivers-locations", h.CompanyDriversLocations)
}

// ========= INGEST =========

// UpdateLocation menerima ping lokasi (~1x per detik per driver aktif).
// Cache selalu di-overwrite; durable store cuma di-update kalau throttle
// window (default 10 detik) sudah lewat.
func (h *Handler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "body bukan JSON valid atau lat/lng tidak bisa diparse",
		})
		return
	}

	if req.DriverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "driverId wajib diisi",
		})
		return
	}
	if req.Lat == nil || req.Lng == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "lat dan lng wajib diisi",
		})
		return
	}

	lat, lng := float64(*req.Lat), float64(*req.Lng)
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "lat harus di antara -90..90 dan lng -180..180",
		})
		return
	}

	ctx := c.Request.Context()
	now := h.now()

	sample := LocationSample{
		DriverID:  req.DriverID,
		Lat:       lat,
		Lng:       lng,
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	// Step 1: cache write, best-effort. Gagal bukan alasan menolak request —
	// path durable di bawah tetap dicoba.
	storedInCache := true
	if err := h.Cache.Set(ctx, sample); err != nil {
		log.Printf("update-location: cache write gagal untuk driver %s: %v", req.DriverID, err)
		storedInCache = false
	}

	// Step 2: durable commit, dibatasi throttle per driver.
	canCommit, rollback, err := h.Throttle.TryAcquire(ctx, req.DriverID)
	if err != nil {
		// throttle store bermasalah -> skip durable, cache sudah terisi
		log.Printf("update-location: throttle check gagal untuk driver %s: %v", req.DriverID, err)
		canCommit = false
	}

	storedInDurable := false
	if canCommit {
		res := h.DB.Model(&driver.Driver{}).
			Where("id = ?", req.DriverID).
			Updates(map[string]interface{}{
				"current_location":     datatypes.NewJSONType(driver.Coordinates{Lat: lat, Lng: lng}),
				"last_location_update": now,
				"updated_at":           now,
			})
		if res.Error != nil {
			// kembalikan throttle state supaya ping berikutnya langsung retry
			rollback()
			log.Printf("update-location: %v untuk driver %s: %v", ErrDurableWrite, req.DriverID, res.Error)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "db_error",
				"message": "gagal menyimpan lokasi ke database",
			})
			return
		}
		if res.RowsAffected == 0 {
			rollback()
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "driver tidak ditemukan",
			})
			return
		}
		storedInDurable = true
	}

	remaining, err := h.Throttle.Remaining(ctx, req.DriverID)
	if err != nil {
		remaining = 0
	}

	message := "Location cached"
	if storedInDurable {
		message = "Location updated"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"details": UpdateLocationDetails{
			StoredInCache:              storedInCache,
			StoredInDurable:            storedInDurable,
			NextDurableCommitInSeconds: int(math.Ceil(remaining.Seconds())),
		},
	})
}
