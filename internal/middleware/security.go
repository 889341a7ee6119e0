package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the response headers appropriate for a JSON API
// that never serves HTML: no sniffing, no framing, no caching of mood
// data, and a deny-everything CSP.
func SecurityHeaders() gin.HandlerFunc {
	isProduction := os.Getenv("MOODLENS_SERVER_ENV") == "production"

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Mood history is personal; keep it out of shared caches.
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")

		// HSTS only where TLS is guaranteed, so local HTTP keeps working.
		if isProduction {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		c.Next()
	}
}
