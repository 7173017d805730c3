package middlewares

import (
	"github.com/gin-gonic/gin"
)

// apiCSP forbids every subresource. Responses are JSON or invoice PDFs, neither
// of which may load or be framed by anything.
const apiCSP = "default-src 'none'; frame-ancestors 'none'; sandbox"

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", apiCSP)
		// invoices carry amounts and table history, keep them out of shared caches
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
