package driver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ShubhamS40/DisplayOnWheels/internal/auth"
	"github.com/ShubhamS40/DisplayOnWheels/internal/pagination"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) RegisterDriverRoutes(r gin.IRoutes) {
	r.GET("/:driverId/details", h.GetDriverDetails)
}

func (h *Handler) RegisterAdminRoutes(r gin.IRoutes) {
	r.GET("/drivers", h.ListDrivers)
}

// GetDriverDetails returns profile data for a single driver.
// Driver hanya boleh lihat profil sendiri; admin boleh lihat semua.
func (h *Handler) GetDriverDetails(c *gin.Context) {
	cu, ok := auth.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	driverID := c.Param("driverId")
	if cu.IsDriver() && cu.ID != driverID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "driver hanya boleh melihat profil sendiri",
		})
		return
	}

	var d Driver
	if err := h.DB.First(&d, "id = ?", driverID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "driver tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "driver": d})
}

// ListDrivers returns the admin-facing paginated driver list.
// Query params: available=true/false, verified=true/false
func (h *Handler) ListDrivers(c *gin.Context) {
	cu, ok := auth.GetCurrentUser(c)
	if !ok || !cu.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "hanya ADMIN yang boleh melihat daftar driver",
		})
		return
	}

	query := h.DB.Model(&Driver{})

	if availableStr := c.Query("available"); availableStr != "" {
		if available, err := strconv.ParseBool(availableStr); err == nil {
			query = query.Where("is_available = ?", available)
		}
	}
	if verifiedStr := c.Query("verified"); verifiedStr != "" {
		if verified, err := strconv.ParseBool(verifiedStr); err == nil {
			query = query.Where("is_email_verified = ?", verified)
		}
	}

	p := pagination.ParsePagination(c)
	if c.IsAborted() {
		return
	}

	var drivers []Driver
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	if err := query.Order("created_at").Limit(p.Limit).Offset(p.Offset).Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": drivers, "pagination": gin.H{"total": total, "limit": p.Limit, "page": p.Page, "max_limit": p.MaxLimit}})
}
