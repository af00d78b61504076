package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	gsqlite "github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShubhamS40/DisplayOnWheels/internal/auth"
	"github.com/ShubhamS40/DisplayOnWheels/internal/driver"
)

var testDBSeq int64

var testSecret = []byte("test-secret")

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(gsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite memory DB: %v", err)
	}
	if err := db.AutoMigrate(&driver.Driver{}); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}
	return db
}

func postLogin(h *auth.Handler, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(b))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)
	return w
}

func TestLogin_DriverSuccessIssuesUsableToken(t *testing.T) {
	db := setupTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	db.Create(&driver.Driver{ID: "d1", FullName: "Asha", Email: "asha@test.local", PasswordHash: string(hash)})

	h := auth.NewHandler(db, testSecret)
	w := postLogin(h, auth.LoginRequest{Email: "asha@test.local", Password: "rahasia123", Role: "DRIVER"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", w.Code, w.Body.String())
	}

	var resp auth.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if resp.Token == "" || resp.User.ID != "d1" || resp.User.Role != "DRIVER" {
		t.Fatalf("login payload salah: %+v", resp)
	}

	// token harus diterima middleware
	w2 := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w2)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer "+resp.Token)
	auth.AuthMiddleware(testSecret)(c)

	cu, ok := auth.GetCurrentUser(c)
	if !ok || cu.ID != "d1" || !cu.IsDriver() {
		t.Fatalf("current user salah: %+v ok=%v", cu, ok)
	}
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	db := setupTestDB(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.DefaultCost)
	db.Create(&driver.Driver{ID: "d1", FullName: "Asha", Email: "asha@test.local", PasswordHash: string(hash)})

	h := auth.NewHandler(db, testSecret)
	w := postLogin(h, auth.LoginRequest{Email: "asha@test.local", Password: "salah", Role: "DRIVER"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLogin_InvalidRoleRejected(t *testing.T) {
	h := auth.NewHandler(setupTestDB(t), testSecret)

	w := postLogin(h, auth.LoginRequest{Email: "a@t", Password: "x", Role: "SUPER_ADMIN"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAuthMiddleware_MissingHeaderRejected(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	auth.AuthMiddleware(testSecret)(c)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
