package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims dipakai di token semua pihak (admin / company / driver)
type UserClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"` // "ADMIN" / "COMPANY" / "DRIVER"
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware validasi Bearer token lalu taruh CurrentUser di context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header missing or invalid",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid token",
			})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*UserClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid token claims",
			})
			c.Abort()
			return
		}

		cu := CurrentUser{
			ID:   claims.UserID,
			Role: Role(claims.Role),
			Name: claims.Name,
		}

		// taruh di context
		c.Set(ContextUserKey, cu)

		c.Next()
	}
}

// RequireRole membatasi route group ke satu role saja.
func RequireRole(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		cu, ok := GetCurrentUser(c)
		if !ok || cu.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "role tidak diizinkan mengakses resource ini",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Helper untuk ambil current user di handler
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return CurrentUser{}, false
	}
	cu, ok := v.(CurrentUser)
	return cu, ok
}
