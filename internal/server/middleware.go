package server

import (
	"net/http"
	"strconv"
	"time"

	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/common/metrics"
	"job-assistant/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// CORS allows any origin and answers preflight requests with 204.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)
		header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestID propagates an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs method, path, status and latency.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request", map[string]interface{}{
			"requestId": c.GetString(requestIDKey),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
			"clientIp":  c.ClientIP(),
		})
	}
}

// RateLimit rejects clients over budget with 429. Limiter failures let the
// request through.
func RateLimit(l *ratelimit.Limiter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		d, err := l.Allow(c.Request.Context(), client)
		if err != nil {
			log.Warn("rate limiter unavailable", map[string]interface{}{
				"requestId": c.GetString(requestIDKey),
				"error":     err,
			})
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

		if !d.Allowed {
			metrics.HTTPRequestsLimited.Inc()
			c.Header("Retry-After", strconv.Itoa(int(d.ResetAfter.Seconds()+0.999)))
			stdErr := errors.NewRateLimitedError(client, d.Limit)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": stdErr.Message,
				"code":  stdErr.Code,
			})
			return
		}
		c.Next()
	}
}
