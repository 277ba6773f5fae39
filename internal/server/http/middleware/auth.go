package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	pkgAuth "github.com/polkiloo/gophershop/internal/pkg/auth"
	"github.com/polkiloo/gophershop/internal/server/http/dto"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "gophershop_token"
)

// TokenParser resolves bearer tokens into user identifiers.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// UserLoader loads the account behind an authenticated request.
type UserLoader interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "Silakan masuk terlebih dahulu")
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "Sesi tidak valid, silakan masuk kembali")
				return
			}
			abort(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// AdminRequired lets only admin accounts through. It must run after AuthRequired.
func AdminRequired(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Get(UserIDContextKey)
		userID, _ := id.(int64)
		if userID == 0 {
			abort(c, http.StatusUnauthorized, "Silakan masuk terlebih dahulu")
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				abort(c, http.StatusUnauthorized, "Sesi tidak valid, silakan masuk kembali")
				return
			}
			abort(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
			return
		}
		if !user.IsAdmin() {
			abort(c, http.StatusForbidden, "Akses ditolak")
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearAuthCookie expires the auth cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.MessageResponse{Success: false, Message: message})
}
