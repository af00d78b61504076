package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	DB     *gorm.DB
	Secret []byte
}

func NewHandler(db *gorm.DB, secret []byte) *Handler {
	return &Handler{DB: db, Secret: secret}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // "ADMIN" / "COMPANY" / "DRIVER"
}

type LoginResponse struct {
	Token string           `json:"token"`
	User  LoginUserPayload `json:"user"`
}

type LoginUserPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/auth/login", h.Login)
}

// tabel login per role; semua punya kolom email + password_hash
func loginTable(role Role) (table, nameColumn string, ok bool) {
	switch role {
	case RoleAdmin:
		return "admins", "full_name", true
	case RoleCompany:
		return "companies", "business_name", true
	case RoleDriver:
		return "drivers", "full_name", true
	}
	return "", "", false
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid JSON body",
		})
		return
	}

	table, nameCol, ok := loginTable(Role(req.Role))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "role harus ADMIN, COMPANY, atau DRIVER",
		})
		return
	}

	// struct lokal supaya tidak mengimpor package driver/company (hindari import cycle)
	type account struct {
		ID           string
		Email        string
		PasswordHash string
		Name         string
	}

	var acc account
	if err := h.DB.Table(table).
		Select("id, email, password_hash, "+nameCol+" AS name").
		Where("email = ?", req.Email).
		First(&acc).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "email atau password salah",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "email atau password salah",
		})
		return
	}

	claims := UserClaims{
		UserID: acc.ID,
		Role:   req.Role,
		Name:   acc.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.Secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "token_error",
			"message": "failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: tokenString,
		User: LoginUserPayload{
			ID:    acc.ID,
			Email: acc.Email,
			Name:  acc.Name,
			Role:  req.Role,
		},
	})
}
