package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"retailbrain/middleware"
	"retailbrain/models"
)

// HandleCopilotChat answers a question about the dataset. The query comes
// from the "query" parameter or a JSON body {"query": "..."}.
// POST /api/v1/copilot/chat
func (h *Handler) HandleCopilotChat(c *fiber.Ctx) error {
	ds, _ := middleware.Dataset(c)

	query := c.Query("query")
	if query == "" && len(c.Body()) > 0 {
		var req models.ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, models.NewError(models.ErrBadRequest, "Invalid request body"))
		}
		query = req.Query
	}
	if strings.TrimSpace(query) == "" {
		return respondError(c, models.NewError(models.ErrBadRequest, "query is required"))
	}

	resp := h.copilot.Chat(c.UserContext(), ds, query)
	return c.JSON(fiber.Map{"success": true, "data": resp})
}
