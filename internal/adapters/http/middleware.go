package http

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

const headerRequestID = "X-Request-Id"

// RequestIDMiddleware ensures every request has a unique X-Request-Id.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				id = generateID()
			}
			c.Response().Header().Set(headerRequestID, id)
			c.Set("request_id", id)
			return next(c)
		}
	}
}

// LoggingMiddleware logs one line per request. The registered route pattern
// is logged alongside the raw path so card names and query strings do not
// explode the cardinality of log queries.
func LoggingMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			attrs := []any{
				"request_id", c.Get("request_id"),
				"method", c.Request().Method,
				"route", c.Path(),
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"remote_ip", c.RealIP(),
				"bytes_out", c.Response().Size,
				"latency_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				attrs = append(attrs, "error", err)
				logger.Error("request", attrs...)
				return err
			}
			logger.Info("request", attrs...)
			return nil
		}
	}
}

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
