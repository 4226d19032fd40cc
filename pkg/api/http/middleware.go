package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/aescanero/tlregion/internal/i18n"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
	ctxLang         = "lang"
	ctxRoute        = "route"
)

// corsMiddleware allows any origin to read the API
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// requestID keeps a valid incoming X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(headerRequestID))
		if err != nil {
			id = uuid.New()
		}
		rid := id.String()
		c.Set(ctxRequestID, rid)
		c.Header(headerRequestID, rid)
		c.Next()
	}
}

// languageMiddleware selects the response message language
func languageMiddleware(messages *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := messages.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(ctxLang, lang)
		c.Header("Content-Language", lang)
		c.Next()
	}
}

// requestLogger is a middleware for request logging
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)

		logger.Info("HTTP request",
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()))
	}
}

// requestMetrics records every request under its route pattern
func requestMetrics(metrics RequestMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.GetString(ctxRoute)
		}
		if route == "" {
			route = "static"
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				route = "/api/*"
			}
		}
		metrics.RecordRequest(route, c.Writer.Status(), time.Since(start))
	}
}
