package driver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	gsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ShubhamS40/DisplayOnWheels/internal/auth"
)

var testDBSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:driver_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(gsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite memory DB: %v", err)
	}
	if err := db.AutoMigrate(&Driver{}); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}
	return db
}

func TestListDrivers_PaginationAndFilter(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&Driver{ID: "d1", FullName: "Asha", Email: "d1@t", PasswordHash: "x", IsAvailable: true})
	db.Create(&Driver{ID: "d2", FullName: "Budi", Email: "d2@t", PasswordHash: "x", IsAvailable: true})
	db.Create(&Driver{ID: "d3", FullName: "Citra", Email: "d3@t", PasswordHash: "x", IsAvailable: false})

	h := NewHandler(db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/drivers?available=true&limit=1", nil)
	c.Set(auth.ContextUserKey, auth.CurrentUser{ID: "a1", Role: auth.RoleAdmin})
	h.ListDrivers(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data       []Driver `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
			Limit int   `json:"limit"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(resp.Data) != 1 {
		t.Fatalf("limit=1 harus mengembalikan 1 baris, got %d", len(resp.Data))
	}
	if resp.Pagination.Total != 2 {
		t.Fatalf("total available = %d, want 2", resp.Pagination.Total)
	}
}

func TestListDrivers_ForbiddenForNonAdmin(t *testing.T) {
	h := NewHandler(setupTestDB(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/drivers", nil)
	c.Set(auth.ContextUserKey, auth.CurrentUser{ID: "d1", Role: auth.RoleDriver})
	h.ListDrivers(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestGetDriverDetails_OwnProfileOnly(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&Driver{ID: "d1", FullName: "Asha", Email: "d1@t", PasswordHash: "x"})
	h := NewHandler(db)

	// driver lain -> 403
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "driverId", Value: "d1"}}
	c.Set(auth.ContextUserKey, auth.CurrentUser{ID: "d2", Role: auth.RoleDriver})
	h.GetDriverDetails(c)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	// profil sendiri -> 200
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Params = gin.Params{{Key: "driverId", Value: "d1"}}
	c2.Set(auth.ContextUserKey, auth.CurrentUser{ID: "d1", Role: auth.RoleDriver})
	h.GetDriverDetails(c2)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", w2.Code, w2.Body.String())
	}

	// tidak ada -> 404
	w3 := httptest.NewRecorder()
	c3, _ := gin.CreateTestContext(w3)
	c3.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c3.Params = gin.Params{{Key: "driverId", Value: "ghost"}}
	c3.Set(auth.ContextUserKey, auth.CurrentUser{ID: "a1", Role: auth.RoleAdmin})
	h.GetDriverDetails(c3)
	if w3.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w3.Code)
	}
}
