package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"rental-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// Auth verifies the bearer token issued by the external identity service
// (HS256, shared secret) and stores user id + role on the context. Token
// issuance, registration and password handling all live outside this
// backend.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak ditemukan"})
			return
		}
		raw := strings.TrimSpace(header[len("bearer "):])

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("metode signing tidak didukung: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		userID := claimString(claims, "sub")
		if userID == "" {
			userID = claimString(claims, "user_id")
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tanpa subject"})
			return
		}

		c.Set(userIDKey, userID)
		c.Set(userRoleKey, claimString(claims, "role"))
		c.Next()
	}
}

// Caller builds the explicit request context handed down to services.
func Caller(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{
		UserID: c.GetString(userIDKey),
		Role:   strings.ToLower(strings.TrimSpace(c.GetString(userRoleKey))),
	}
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		switch s := v.(type) {
		case string:
			return strings.TrimSpace(s)
		case float64:
			return strings.TrimSpace(fmt.Sprintf("%.0f", s))
		}
	}
	return ""
}
