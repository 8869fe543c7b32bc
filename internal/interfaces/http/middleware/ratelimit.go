package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/venuecore/backend/internal/infrastructure/cache"
	"github.com/venuecore/backend/internal/interfaces/http/dto"
)

// RateLimit throttles requests using the given limiter. Authenticated
// requests are counted per user, anonymous requests per client IP. When the
// limiter itself fails, the request passes through; throttling is never a
// reason to drop traffic on an infrastructure error.
func RateLimit(limiter cache.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(JWTUserIDKey)
		if key == "" {
			key = c.ClientIP()
		}

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Writer.Header().Set("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.ErrCodeRateLimited, "Too many requests"))
			return
		}

		c.Next()
	}
}
