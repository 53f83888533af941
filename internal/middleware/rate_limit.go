// Package middleware holds gin middleware shared by the route groups.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// DefaultUploadRate allows 60 upload requests per client per minute.
const DefaultUploadRate = "60-M"

// RateLimit limits requests per client IP. formatted uses the limiter
// notation, e.g. "60-M" or "10-S"; an invalid value falls back to
// DefaultUploadRate.
func RateLimit(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted(DefaultUploadRate)
	}
	instance := limiter.New(memory.NewStore(), rate)

	return func(c *gin.Context) {
		result, err := instance.Get(c, c.ClientIP())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limiter unavailable"})
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.Reset))

		if result.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many uploads, try again later"})
			return
		}
		c.Next()
	}
}
