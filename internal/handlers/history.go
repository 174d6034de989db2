package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/communityhub/internal/middleware"
	"github.com/example/communityhub/internal/models"
	"github.com/example/communityhub/internal/store"
	"github.com/example/communityhub/internal/utils"
)

// HistoryHandler serves slug-keyed content pages.
type HistoryHandler struct {
	history store.HistoryStore
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(history store.HistoryStore) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// SetPage creates or overwrites the page stored under the given slug.
func (h *HistoryHandler) SetPage(c *fiber.Ctx) error {
	var page models.HistoryPage
	if err := c.BodyParser(&page); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if page.Slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "slug is required")
	}

	if err := h.history.Upsert(&page); err != nil {
		return err
	}

	log := middleware.Logger(c)
	log.Info().Str("slug", page.Slug).Msg("history record created")
	return utils.Success(c, fiber.StatusCreated, "History record created", page)
}

// GetPage returns the page stored under the slug.
func (h *HistoryHandler) GetPage(c *fiber.Ctx) error {
	slug := c.Params("slug")

	page, err := h.history.GetBySlug(slug)
	if err != nil {
		return err
	}
	if page == nil {
		return fiber.NewError(fiber.StatusNotFound, "history page not found")
	}

	return utils.Success(c, fiber.StatusOK, "History record retrieved", page)
}
