package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/communityhub/internal/logger"
)

const (
	requestIDContextKey = "requestID"
	loggerContextKey    = "requestLogger"
)

// RequestLogger assigns a correlation id at ingress, stores a request-scoped
// logger in context, and logs the request before and after the handler runs.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()
		reqLog := logger.WithRequestID(requestID)

		c.Locals(requestIDContextKey, requestID)
		c.Locals(loggerContextKey, reqLog)

		reqLog.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Msg("request received")

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var ferr *fiber.Error
			if errors.As(err, &ferr) {
				status = ferr.Code
			}
		}

		reqLog.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request completed")

		return err
	}
}

// RequestID returns the correlation id assigned at ingress.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}

// Logger returns the request-scoped logger, falling back to the global one
// when the request logging middleware is not installed.
func Logger(c *fiber.Ctx) zerolog.Logger {
	if reqLog, ok := c.Locals(loggerContextKey).(zerolog.Logger); ok {
		return reqLog
	}
	return logger.Logger
}
