package handlers

import (
	"github.com/gofiber/fiber/v2"

	"retailbrain/ingest"
	"retailbrain/models"
)

// HandleUpload parses a CSV upload and replaces the current dataset.
// POST /api/v1/upload (multipart form field "file")
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, models.NewError(models.ErrBadRequest, "A CSV file is required in the 'file' field"))
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return respondError(c, models.NewError(models.ErrBadRequest, "File exceeds the %d byte upload limit", h.maxUploadBytes))
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error().Err(err).Str("file", fileHeader.Filename).Msg("Failed to open upload")
		return respondError(c, models.NewError(models.ErrBadRequest, "Failed to read uploaded file"))
	}
	defer file.Close()

	ds, err := ingest.ParseCSV(file)
	if err != nil {
		h.log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("Rejected upload")
		return respondError(c, err)
	}
	h.store.Replace(ds)

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "File uploaded successfully",
		"rows":       ds.Len(),
		"dataset_id": ds.ID,
	})
}
