package pagination

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination untuk list admin (drivers, companies)
type Pagination struct {
	Limit    int   `json:"limit"`
	Offset   int   `json:"offset"`
	Page     int   `json:"page"`
	MaxLimit int   `json:"maxLimit"`
	Total    int64 `json:"total,omitempty"`
}

const defaultLimit = 20

// ParsePagination baca query param `limit` dan `page`; batas atas dari env
// MAX_LIMIT (default 500). Param tidak valid -> 400 + abort.
func ParsePagination(c *gin.Context) Pagination {
	maxLimit := 500
	if ml := os.Getenv("MAX_LIMIT"); ml != "" {
		if v, err := strconv.Atoi(ml); err == nil && v > 0 {
			maxLimit = v
		}
	}

	limit := defaultLimit
	if ls := c.Query("limit"); ls != "" {
		v, err := strconv.Atoi(ls)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "invalid limit parameter"})
			c.Abort()
			return Pagination{}
		}
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	page := 1
	if ps := c.Query("page"); ps != "" {
		v, err := strconv.Atoi(ps)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "invalid page parameter"})
			c.Abort()
			return Pagination{}
		}
		page = v
	}

	return Pagination{
		Limit:    limit,
		Offset:   (page - 1) * limit,
		Page:     page,
		MaxLimit: maxLimit,
	}
}
