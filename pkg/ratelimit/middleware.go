package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"ticketly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// ForType builds a rate limiting middleware for one traffic class. Routers
// attach the auth, booking, and checkin classes to their hot endpoints.
func ForType(rateLimiter *RateLimiter, limitType RateLimitType) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Redis being down must not take the API with it.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Middleware applies the default traffic class to everything it wraps.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return ForType(rateLimiter, RateLimitTypeDefault)
}

// extracts real client IP
func getClientIP(c *gin.Context) string {
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" && net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	return c.ClientIP()
}
