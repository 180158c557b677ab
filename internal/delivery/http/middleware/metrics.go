package middleware

import (
	"strconv"
	"time"

	"skill-matrix/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
)

// Metrics records per-request duration labeled by method, route pattern and
// status. The route pattern keeps cardinality bounded; raw paths with uuids
// in them would explode the label space.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		metrics.RecordHTTPRequestDuration(
			c.Method(),
			path,
			strconv.Itoa(c.Response().StatusCode()),
			time.Since(start),
		)
		return err
	}
}
