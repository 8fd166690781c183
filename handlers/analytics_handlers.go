package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"retailbrain/analytics"
	"retailbrain/forecasting"
	"retailbrain/middleware"
	"retailbrain/models"
)

// HandleDashboardMetrics returns the dashboard aggregates.
// GET /api/v1/dashboard/metrics
func (h *Handler) HandleDashboardMetrics(c *fiber.Ctx) error {
	ds, _ := middleware.Dataset(c)

	result, err := analytics.Dashboard(ds)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}

// HandleForecast forecasts demand and reorder guidance for one product.
// GET /api/v1/forecast?product=X&days=7&lead_time_days=7&service_level=0.95
func (h *Handler) HandleForecast(c *fiber.Ctx) error {
	ds, _ := middleware.Dataset(c)

	product := c.Query("product")
	if strings.TrimSpace(product) == "" {
		return respondError(c, models.NewError(models.ErrBadRequest, "product is required"))
	}

	defaults := forecasting.DefaultOptions()
	opts := forecasting.Options{
		HorizonDays:  c.QueryInt("days", defaults.HorizonDays),
		LeadTimeDays: c.QueryInt("lead_time_days", defaults.LeadTimeDays),
		ServiceLevel: c.QueryFloat("service_level", defaults.ServiceLevel),
	}

	result, err := forecasting.Forecast(ds, product, opts)
	if err != nil {
		h.log.Debug().Err(err).Str("product", product).Msg("Forecast rejected")
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}
