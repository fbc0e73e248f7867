package logger

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// quietPrefixes are polled by orchestrators and scrapers; they are logged at
// debug so they do not drown the access log.
var quietPrefixes = []string{"/health", "/metrics"}

// RequestLogger returns a Fiber middleware that writes one structured access
// log entry per request through the global zap logger.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			if e, ok := chainErr.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		if Logger == nil {
			return chainErr
		}

		path := c.Path()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.String("remote_ip", c.IP()),
		}
		if chainErr != nil {
			fields = append(fields, zap.Error(chainErr))
		}

		log := Logger.WithOptions(zap.AddCallerSkip(1))
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request failed", fields...)
		case isQuiet(path):
			log.Debug("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return chainErr
	}
}

func isQuiet(path string) bool {
	for _, prefix := range quietPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
