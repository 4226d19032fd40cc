package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aescanero/tlregion/internal/application/catalog"
	"github.com/aescanero/tlregion/internal/i18n"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleHealth reports the latest dataset check
func (s *Server) handleHealth(c *gin.Context) {
	status := s.health.GetStatus()
	if status.Timestamp.IsZero() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "starting",
			"timestamp": time.Now().UTC(),
			"checks": gin.H{
				"datasets": "pending",
			},
		})
		return
	}

	if !status.Healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "unhealthy",
			"timestamp":  time.Now().UTC(),
			"checked_at": status.Timestamp.UTC(),
			"checks": gin.H{
				"datasets": status.Error,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC(),
		"checked_at": status.Timestamp.UTC(),
		"checks": gin.H{
			"datasets": "ok",
		},
		"records": status.Stats,
	})
}

// handleDataset serves a dataset file as stored
func (s *Server) handleDataset(kind catalog.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := s.catalog.Raw(c.Request.Context(), kind)
		if err != nil {
			s.logger.Error("failed to serve dataset",
				zap.String("kind", string(kind)),
				zap.Error(err))
			s.fail(c, http.StatusInternalServerError, nil, s.msg(c, i18n.DataReadFailed))
			return
		}

		c.Data(http.StatusOK, jsonContentType, data)
	}
}

// handleGetDistrict handles getting a district by id
func (s *Server) handleGetDistrict(c *gin.Context) {
	s.getDistrict(c, c.Param("id"))
}

// getDistrict answers a district lookup. Paths nested below a district use
// their last segment as the id.
func (s *Server) getDistrict(c *gin.Context, id string) {
	district, err := s.catalog.District(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.fail(c, http.StatusNotFound, nil, s.msg(c, i18n.DistrictNotFound))
			return
		}
		s.logger.Error("failed to get district", zap.String("id", id), zap.Error(err))
		s.fail(c, http.StatusInternalServerError, nil, s.msg(c, i18n.ErrorGeneric, err.Error()))
		return
	}

	s.success(c, district, s.msg(c, i18n.DistrictFound))
}

// handleSearch handles searching all datasets by name
func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		s.fail(c, http.StatusBadRequest, []interface{}{}, s.msg(c, i18n.SearchQueryRequired))
		return
	}

	results, err := s.catalog.Search(c.Request.Context(), query)
	if err != nil {
		s.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		s.fail(c, http.StatusInternalServerError, nil, s.msg(c, i18n.ErrorGeneric, err.Error()))
		return
	}

	s.success(c, results, s.msg(c, i18n.SearchFound, len(results)))
}

// handleStats handles dataset statistics
func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.catalog.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to compute statistics", zap.Error(err))
		s.fail(c, http.StatusInternalServerError, nil, s.msg(c, i18n.ErrorGeneric, err.Error()))
		return
	}

	s.success(c, stats, s.msg(c, i18n.StatsFound))
}

// handleNoRoute dispatches API paths that are matched by prefix rather than
// by route, answers unknown API paths and falls back to static files
func (s *Server) handleNoRoute(c *gin.Context) {
	p := c.Request.URL.Path
	if strings.HasPrefix(p, "/api/") {
		get := c.Request.Method == http.MethodGet
		switch {
		case get && strings.HasPrefix(p, "/api/districts/"):
			c.Set(ctxRoute, "/api/districts/*")
			s.getDistrict(c, p[strings.LastIndexByte(p, '/')+1:])
		case get && strings.HasPrefix(p, "/api/search"):
			c.Set(ctxRoute, "/api/search*")
			s.handleSearch(c)
		default:
			s.fail(c, http.StatusNotFound, nil, s.msg(c, i18n.EndpointNotFound))
		}
		return
	}

	s.serveStatic(c)
}

// recoverPanic turns a handler panic into an error envelope
func (s *Server) recoverPanic(c *gin.Context, recovered interface{}) {
	s.logger.Error("panic while handling request",
		zap.String("request_id", c.GetString(ctxRequestID)),
		zap.String("path", c.Request.URL.Path),
		zap.Any("panic", recovered))
	s.fail(c, http.StatusInternalServerError, nil, s.msg(c, i18n.ErrorGeneric, fmt.Sprint(recovered)))
	c.Abort()
}
