package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func (h *Handler) requestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}
	c.Set(requestIDCtxKey, requestID)
	c.Header("X-Request-ID", requestID)

	c.Next()

	status := c.Writer.Status()
	level := zapcore.InfoLevel
	switch {
	case status >= 500:
		level = zapcore.ErrorLevel
	case status >= 400:
		level = zapcore.WarnLevel
	}

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
		zap.String("client_ip", c.ClientIP()),
		zap.Int("body_size", c.Writer.Size()),
	}
	if userID := h.getUserIDFromRequest(c); userID != uuid.Nil {
		fields = append(fields, zap.String("user_id", userID.String()))
	}

	if ce := h.logger.Check(level, "request"); ce != nil {
		ce.Write(fields...)
	}
}
