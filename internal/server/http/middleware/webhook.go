package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CallbackToken rejects gateway callbacks whose header token does not match expected.
func CallbackToken(header, expected string) gin.HandlerFunc {
	want := []byte(expected)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(header))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			abort(c, http.StatusUnauthorized, "Token callback tidak valid")
			return
		}
		c.Next()
	}
}

// RateLimit throttles requests through a shared token bucket. A non-positive
// limit disables throttling.
func RateLimit(limit float64, burst int) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			abort(c, http.StatusTooManyRequests, "Terlalu banyak permintaan")
			return
		}
		c.Next()
	}
}
