package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"retailbrain/copilot"
	"retailbrain/database"
	"retailbrain/models"
)

// Handler serves the analytics API over the current dataset.
type Handler struct {
	store          *database.Store
	copilot        *copilot.Copilot
	maxUploadBytes int64
	log            zerolog.Logger
}

// New wires the handlers to their collaborators.
func New(store *database.Store, cp *copilot.Copilot, maxUploadBytes int, log zerolog.Logger) *Handler {
	return &Handler{
		store:          store,
		copilot:        cp,
		maxUploadBytes: int64(maxUploadBytes),
		log:            log,
	}
}

// HandleHealth reports liveness and whether a dataset is loaded.
// GET /api/v1/health
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	ds, loaded := h.store.Current()
	body := fiber.Map{"status": "ok", "dataset_loaded": loaded}
	if loaded {
		body["dataset_id"] = ds.ID
		body["rows"] = ds.Len()
	}
	return c.JSON(body)
}

// respondError renders a tagged error in the API's error envelope.
func respondError(c *fiber.Ctx, err error) error {
	kind := models.KindOf(err)
	message := "Internal server error"
	var e *models.Error
	if errors.As(err, &e) {
		message = e.Message
	}
	return c.Status(statusFor(kind)).JSON(fiber.Map{
		"success": false,
		"error":   kind,
		"message": message,
	})
}

func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.ErrInvalidRange, models.ErrBadRequest, models.ErrNoData:
		return fiber.StatusBadRequest
	case models.ErrNotFound:
		return fiber.StatusNotFound
	case models.ErrInvalidData, models.ErrEmpty:
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
