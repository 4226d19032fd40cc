package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const jsonContentType = "application/json; charset=utf-8"

// Response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every API response
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// success writes a success envelope
func (s *Server) success(c *gin.Context, data interface{}, message string) {
	s.writeEnvelope(c, http.StatusOK, Envelope{Status: StatusSuccess, Data: data, Message: message})
}

// fail writes an error envelope. code is only used as the HTTP status when
// strict status codes are enabled; otherwise errors are reported with 200.
func (s *Server) fail(c *gin.Context, code int, data interface{}, message string) {
	if !s.strict {
		code = http.StatusOK
	}
	s.writeEnvelope(c, code, Envelope{Status: StatusError, Data: data, Message: message})
}

// writeEnvelope renders env with two-space indentation and without HTML escaping
func (s *Server) writeEnvelope(c *gin.Context, code int, env Envelope) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(code, jsonContentType, buf.Bytes())
}

// msg returns the message for key in the request language
func (s *Server) msg(c *gin.Context, key string, args ...interface{}) string {
	return s.messages.T(c.GetString(ctxLang), key, args...)
}
