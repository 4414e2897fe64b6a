package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dice-nft-backend/internal/services"
)

// RateLimit admits requests per client IP. A limiter error is treated as a
// rejection.
func RateLimit(limiter services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("Rate limit check failed for %s: %v", c.ClientIP(), err)
		}

		if err != nil || !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded. Please wait before making more requests.",
				"retry_after": limiter.Window().Seconds(),
			})
			return
		}

		c.Next()
	}
}
