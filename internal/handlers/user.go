package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/communityhub/internal/middleware"
	"github.com/example/communityhub/internal/store"
	"github.com/example/communityhub/internal/utils"
)

// UserHandler serves user profile views.
type UserHandler struct {
	users store.UserStore
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// GetProfile returns the authenticated user's record. The password hash never
// leaves the server.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "access denied, no token provided")
	}

	user, err := h.users.GetByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		log := middleware.Logger(c)
		log.Warn().Str("username", username).Msg("profile not found")
		return fiber.NewError(fiber.StatusNotFound, "user not found, please register")
	}

	return utils.Success(c, fiber.StatusOK, "User profile retrieved successfully", user)
}

// ListUnverified returns all accounts still awaiting verification.
func (h *UserHandler) ListUnverified(c *fiber.Ctx) error {
	users, err := h.users.ListUnverified()
	if err != nil {
		return err
	}

	return utils.Success(c, fiber.StatusOK, "Unverified users retrieved successfully", users)
}
