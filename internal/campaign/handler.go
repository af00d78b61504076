package campaign

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ShubhamS40/DisplayOnWheels/internal/auth"
	"github.com/ShubhamS40/DisplayOnWheels/internal/driver"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) RegisterDriverRoutes(r gin.IRoutes) {
	r.GET("/:driverId/campaigns", h.GetDriverCampaigns)
}

func (h *Handler) RegisterCompanyRoutes(r gin.IRoutes) {
	r.GET("/:companyId/campaigns", h.ListCompanyCampaigns)
}

// ========= DRIVER DASHBOARD =========

// Satu baris riwayat campaign di dashboard driver
type DriverCampaignItem struct {
	AssignmentID  string     `json:"assignmentId"`
	CampaignID    string     `json:"campaignId"`
	Title         string     `json:"title"`
	CompanyName   string     `json:"companyName"`
	PlanName      *string    `json:"planName,omitempty"`
	Status        string     `json:"status"`
	AssignedAt    time.Time  `json:"assignedAt"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	ProofUploaded bool       `json:"proofUploaded"`
	ProofVerified bool       `json:"proofVerified"`
	ProofPhotoURL *string    `json:"proofPhotoUrl,omitempty"` // hanya diisi kalau sudah diverifikasi
	LastActive    *time.Time `json:"lastActiveAt,omitempty"`
}

// GetDriverCampaigns returns the driver's campaign history with proof-upload
// state, newest assignment first.
func (h *Handler) GetDriverCampaigns(c *gin.Context) {
	cu, ok := auth.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	driverID := c.Param("driverId")
	if driverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "driverId wajib diisi"})
		return
	}
	if cu.IsDriver() && cu.ID != driverID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "driver hanya boleh melihat campaign sendiri",
		})
		return
	}

	// pastikan drivernya ada -> 404, bukan array kosong yang menyesatkan
	var d driver.Driver
	if err := h.DB.Select("id").First(&d, "id = ?", driverID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "driver tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	var assignments []CampaignDriver
	if err := h.DB.
		Where("driver_id = ?", driverID).
		Preload("Campaign").
		Preload("Campaign.Company").
		Preload("Campaign.Plan").
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	items := make([]DriverCampaignItem, 0, len(assignments))
	for _, a := range assignments {
		item := DriverCampaignItem{
			AssignmentID:  a.ID,
			Status:        a.Status,
			AssignedAt:    a.AssignedAt,
			ProofUploaded: a.ProofPhotoURL != nil,
			ProofVerified: a.IsProofPhotoVerified,
			LastActive:    a.LastActive,
		}
		if a.Campaign != nil {
			item.CampaignID = a.Campaign.ID
			item.Title = a.Campaign.Title
			item.StartDate = a.Campaign.StartDate
			item.EndDate = a.Campaign.EndDate
			if a.Campaign.Company != nil {
				item.CompanyName = a.Campaign.Company.BusinessName
			}
			if a.Campaign.Plan != nil {
				item.PlanName = &a.Campaign.Plan.Title
			}
		}
		// URL foto bukti hanya keluar setelah admin memverifikasi
		if a.IsProofPhotoVerified {
			item.ProofPhotoURL = a.ProofPhotoURL
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "campaigns": items})
}

// ========= COMPANY CAMPAIGN LIST =========

type CompanyCampaignItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ApprovalStatus string    `json:"approvalStatus"`
	PosterURL      *string   `json:"posterUrl,omitempty"`
	PlanName       *string   `json:"planName,omitempty"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Validity       *string   `json:"validity,omitempty"` // "N days left" untuk campaign aktif
	DriversCount   int       `json:"driversCount"`
}

// ListCompanyCampaigns returns the company's campaigns.
// Query param status: "active" / "pending" / "completed"
func (h *Handler) ListCompanyCampaigns(c *gin.Context) {
	cu, ok := auth.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	companyID := c.Param("companyId")
	if cu.IsCompany() && cu.ID != companyID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "company hanya boleh melihat campaign sendiri",
		})
		return
	}

	now := time.Now()
	query := h.DB.Model(&Campaign{}).Where("company_id = ?", companyID)

	switch c.Query("status") {
	case "active":
		query = query.Where("approval_status = ? AND end_date > ?", ApprovalApproved, now)
	case "pending":
		query = query.Where("approval_status = ?", ApprovalPending)
	case "completed":
		query = query.Where("approval_status = ? AND end_date <= ?", ApprovalApproved, now)
	}

	var campaigns []Campaign
	if err := query.Preload("Plan").Order("created_at DESC").Find(&campaigns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	items := make([]CompanyCampaignItem, 0, len(campaigns))
	for _, cp := range campaigns {
		item := CompanyCampaignItem{
			ID:             cp.ID,
			Title:          cp.Title,
			Description:    cp.Description,
			ApprovalStatus: cp.ApprovalStatus,
			PosterURL:      cp.PosterURL,
			StartDate:      cp.StartDate,
			EndDate:        cp.EndDate,
		}
		if cp.Plan != nil {
			item.PlanName = &cp.Plan.Title
		}

		var cnt int64
		if err := h.DB.Model(&CampaignDriver{}).Where("campaign_id = ?", cp.ID).Count(&cnt).Error; err != nil {
			// list tetap jalan, driversCount degradasi ke 0
			log.Printf("company-campaigns: gagal menghitung driver untuk campaign %s: %v", cp.ID, err)
		} else {
			item.DriversCount = int(cnt)
		}

		if cp.ApprovalStatus == ApprovalApproved && cp.EndDate.After(now) {
			days := int(math.Ceil(cp.EndDate.Sub(now).Hours() / 24))
			v := formatValidity(days)
			item.Validity = &v
		}

		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "campaigns": items})
}

func formatValidity(days int) string {
	if days == 1 {
		return "1 day left"
	}
	return strconv.Itoa(days) + " days left"
}
