package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"retailbrain/database"
	"retailbrain/models"
)

const datasetKey = "dataset"

// RequestLogger logs every request once it has been handled.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Interface("request_id", c.Locals("requestid")).
			Msg("Request handled")
		return err
	}
}

// DatasetRequired rejects the request until a dataset has been uploaded and
// pins the current snapshot for the rest of the request.
func DatasetRequired(store *database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ds, ok := store.Current()
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   models.ErrNoData,
				"message": "No data uploaded",
			})
		}
		c.Locals(datasetKey, ds)
		return c.Next()
	}
}

// Dataset returns the snapshot pinned by DatasetRequired.
func Dataset(c *fiber.Ctx) (*models.Dataset, bool) {
	ds, ok := c.Locals(datasetKey).(*models.Dataset)
	return ds, ok && ds != nil
}
