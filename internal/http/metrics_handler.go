// Package http exposes the computed metric objects as a JSON API for the
// external dashboard.
package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"shoplens/internal/dataset"
)

// MetricsHandler serves snapshot data from the dataset store.
type MetricsHandler struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewMetricsHandler creates a metrics handler backed by the given store.
func NewMetricsHandler(store *dataset.Store, logger *slog.Logger) *MetricsHandler {
	return &MetricsHandler{store: store, logger: logger}
}

// GetMetrics returns the full snapshot.
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	snapshot := h.store.Snapshot()
	if snapshot == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Dataset not loaded yet",
			"code":  "NOT_READY",
		})
	}
	return c.JSON(snapshot)
}

// GetFinancialMetrics returns the scalar financial KPIs.
func (h *MetricsHandler) GetFinancialMetrics(c *fiber.Ctx) error {
	snapshot := h.store.Snapshot()
	if snapshot == nil {
		return notReady(c)
	}
	return c.JSON(snapshot.Financial)
}

// GetTrafficMetrics returns the traffic analytics payload.
func (h *MetricsHandler) GetTrafficMetrics(c *fiber.Ctx) error {
	snapshot := h.store.Snapshot()
	if snapshot == nil {
		return notReady(c)
	}
	return c.JSON(snapshot.Traffic)
}

// GetProductMetrics returns the per-product breakdowns.
func (h *MetricsHandler) GetProductMetrics(c *fiber.Ctx) error {
	snapshot := h.store.Snapshot()
	if snapshot == nil {
		return notReady(c)
	}
	return c.JSON(fiber.Map{
		"orders_by_product":  snapshot.OrdersByProduct,
		"refunds_by_product": snapshot.RefundsByProduct,
	})
}

// Refresh reloads the dataset; recomputation is skipped when the raw input
// is unchanged.
func (h *MetricsHandler) Refresh(c *fiber.Ctx) error {
	changed, err := h.store.Refresh(c.Context())
	if err != nil {
		h.logger.Error("dataset refresh failed", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh dataset",
			"code":  "REFRESH_ERROR",
		})
	}
	return c.JSON(fiber.Map{
		"recomputed":  changed,
		"fingerprint": h.store.Fingerprint(),
	})
}

func notReady(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "Dataset not loaded yet",
		"code":  "NOT_READY",
	})
}
