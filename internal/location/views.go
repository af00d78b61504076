package location

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ShubhamS40/DisplayOnWheels/internal/auth"
	"github.com/ShubhamS40/DisplayOnWheels/internal/campaign"
	"github.com/ShubhamS40/DisplayOnWheels/internal/company"
	"github.com/ShubhamS40/DisplayOnWheels/internal/driver"
)

// Satu entry hasil resolusi scope, sebelum di-join dengan profil driver.
// active == nil berarti "derive dari flag availability driver" (admin view);
// company view mengisinya dari status assignment.
type scopedEntry struct {
	sample   LocationSample
	active   *bool
	campaign *CampaignContext
}

// ========= ADMIN VIEW =========

// AdminDriversLocations: scope = seluruh isi ephemeral store. Driver yang tidak
// punya record durable tetap ditampilkan sebagai "Unknown Driver" — data parsial
// lebih berguna daripada hilang diam-diam.
func (h *Handler) AdminDriversLocations(c *gin.Context) {
	cu, ok := auth.GetCurrentUser(c)
	if !ok || !cu.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "hanya ADMIN yang boleh melihat semua lokasi driver",
		})
		return
	}

	ctx := c.Request.Context()

	samples, err := h.Cache.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "cache_error",
			"message": "gagal membaca lokasi dari cache",
		})
		return
	}

	// urutkan key supaya output stabil
	ids := make([]string, 0, len(samples))
	for id := range samples {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]scopedEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, scopedEntry{sample: samples[id]})
	}

	now := h.now()
	enriched, err := h.enrich(entries, true, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"drivers":  enriched,
		"metadata": buildMetadata(enriched, now),
	})
}

// ========= COMPANY VIEW =========

// CompanyDriversLocations: scope = assignment aktif milik company, bukan isi
// cache. Driver yang belum pernah ping (tidak ada sample valid) tidak muncul
// sama sekali — tidak pernah ada entry berkoordinat kosong.
func (h *Handler) CompanyDriversLocations(c *gin.Context) {
	cu, ok := auth.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	companyID := c.Param("companyId")
	if cu.IsDriver() || (cu.IsCompany() && cu.ID != companyID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "company hanya boleh melihat driver campaign sendiri",
		})
		return
	}

	// unknown company -> 404, bukan array kosong
	var co company.Company
	if err := h.DB.Select("id").First(&co, "id = ?", companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "company tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	assignments, err := campaign.ActiveAssignmentsByCompany(h.DB, companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	now := h.now()

	driverIDs := make([]string, 0, len(assignments))
	seen := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if !seen[a.DriverID] {
			seen[a.DriverID] = true
			driverIDs = append(driverIDs, a.DriverID)
		}
	}

	samples := map[string]LocationSample{}
	if len(driverIDs) > 0 {
		samples, err = h.Cache.BatchGet(ctx, driverIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "cache_error",
				"message": "gagal membaca lokasi dari cache",
			})
			return
		}
	}

	entries := make([]scopedEntry, 0, len(assignments))
	for _, a := range assignments {
		sample, found := samples[a.DriverID]
		if !found {
			// assigned tapi belum pernah ping -> difilter, bukan null
			continue
		}

		// isActive di company view = assignment sedang berjalan,
		// bukan flag availability umum si driver
		active := a.Status == campaign.AssignmentInProgress

		var cctx *CampaignContext
		if a.Campaign != nil {
			cctx = &CampaignContext{
				CampaignID: a.Campaign.ID,
				Title:      a.Campaign.Title,
				Status:     a.Status,
				AssignedAt: a.AssignedAt,
			}
		}

		entries = append(entries, scopedEntry{sample: sample, active: &active, campaign: cctx})
	}

	enriched, err := h.enrich(entries, false, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"drivers":  enriched,
		"metadata": buildMetadata(enriched, now),
	})
}

// ========= SHARED MERGE =========

// enrich joins scoped samples dengan profil driver (batch fetch satu query).
// includeApproval cuma true untuk admin view.
func (h *Handler) enrich(entries []scopedEntry, includeApproval bool, now time.Time) ([]EnrichedDriverLocation, error) {
	ids := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !seen[e.sample.DriverID] {
			seen[e.sample.DriverID] = true
			ids = append(ids, e.sample.DriverID)
		}
	}

	byID := make(map[string]driver.Driver, len(ids))
	if len(ids) > 0 {
		var drivers []driver.Driver
		if err := h.DB.Where("id IN ?", ids).Find(&drivers).Error; err != nil {
			return nil, err
		}
		for _, d := range drivers {
			byID[d.ID] = d
		}
	}

	enriched := make([]EnrichedDriverLocation, 0, len(entries))
	for _, e := range entries {
		item := EnrichedDriverLocation{
			DriverID:      e.sample.DriverID,
			Lat:           e.sample.Lat,
			Lng:           e.sample.Lng,
			Timestamp:     e.sample.Timestamp,
			LastUpdateAgo: LastUpdateAgo(e.sample.Timestamp, now),
			Campaign:      e.campaign,
		}

		if d, found := byID[e.sample.DriverID]; found {
			item.Name = d.FullName
			item.Phone = d.ContactNumber
			item.VehicleNumber = d.VehicleNumber
			item.VehicleType = d.VehicleType
			if includeApproval {
				approved := d.IsEmailVerified
				item.IsApproved = &approved
			}
			if e.active != nil {
				item.IsActive = *e.active
			} else {
				item.IsActive = d.IsAvailable
			}
		} else {
			// sample ada di cache tapi record durable hilang: tampilkan apa adanya
			item.Name = "Unknown Driver"
			if e.active != nil {
				item.IsActive = *e.active
			}
		}

		enriched = append(enriched, item)
	}

	return enriched, nil
}

// buildMetadata dihitung dari list FINAL setelah filter, bukan scope awal.
func buildMetadata(list []EnrichedDriverLocation, now time.Time) ViewMetadata {
	active := 0
	for _, d := range list {
		if d.IsActive {
			active++
		}
	}
	return ViewMetadata{
		TotalDrivers:  len(list),
		ActiveDrivers: active,
		Timestamp:     now.UTC().Format(time.RFC3339),
	}
}
