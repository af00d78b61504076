package company

import (
	"net/http"

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

func (h *Handler) RegisterCompanyRoutes(r gin.IRoutes) {
	r.GET("/:companyId/details", h.GetCompanyDetails)
}

func (h *Handler) RegisterAdminRoutes(r gin.IRoutes) {
	r.GET("/companies", h.ListCompanies)
}

func (h *Handler) GetCompanyDetails(c *gin.Context) {
	cu, ok := auth.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	companyID := c.Param("companyId")
	if cu.IsCompany() && cu.ID != companyID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "company hanya boleh melihat profil sendiri",
		})
		return
	}

	var co Company
	if err := h.DB.First(&co, "id = ?", companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "company tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "company": co})
}

func (h *Handler) ListCompanies(c *gin.Context) {
	cu, ok := auth.GetCurrentUser(c)
	if !ok || !cu.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "hanya ADMIN yang boleh melihat daftar company",
		})
		return
	}

	p := pagination.ParsePagination(c)
	if c.IsAborted() {
		return
	}

	var companies []Company
	var total int64
	query := h.DB.Model(&Company{})
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	if err := query.Order("created_at").Limit(p.Limit).Offset(p.Offset).Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": companies, "pagination": gin.H{"total": total, "limit": p.Limit, "page": p.Page, "max_limit": p.MaxLimit}})
}
