package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"learnloop/internal/pkg/metrics"
)

// Metrics records request latency. It must run outside Logger so the final status
// is already written.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}

		status := strconv.Itoa(c.Response().StatusCode())
		metrics.APILatency.WithLabelValues(c.Method(), path, status).Observe(time.Since(start).Seconds())
		return err
	}
}
