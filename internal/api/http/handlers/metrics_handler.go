package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thehatchggs/site-api/internal/observability"
)

// MetricsHandler exposes the in-memory request counters to the admin
// console.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Report GET /admin/metrics. Counters are keyed path|method|status for
// requests and path|method|code for errors.
func (h *MetricsHandler) Report(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests": h.metrics.RequestTotals(),
		"errors":   h.metrics.ErrorTotals(),
	}})
}
