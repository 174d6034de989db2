package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/communityhub/internal/config"
	"github.com/example/communityhub/internal/store"
	"github.com/example/communityhub/internal/utils"
)

const usernameContextKey = "currentUsername"

// Auth validates bearer tokens and loads the authenticated username into
// context. A missing header is rejected with 401; a header that fails token
// verification is rejected with 400, matching the behavior clients depend on.
func Auth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "access denied, no token provided")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusBadRequest, "invalid token")
		}

		username, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			log := Logger(c)
			log.Warn().Err(err).Msg("token verification failed")
			return fiber.NewError(fiber.StatusBadRequest, "invalid token")
		}

		c.Locals(usernameContextKey, username)
		return c.Next()
	}
}

// RequireAdmin re-resolves the authenticated user and requires the admin flag.
// Composes after Auth.
func RequireAdmin(users store.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, ok := CurrentUsername(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "access denied, no token provided")
		}

		user, err := users.GetByUsername(username)
		if err != nil {
			return err
		}
		if user == nil {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		if !user.IsAdmin {
			log := Logger(c)
			log.Warn().Str("username", username).Msg("admin access denied")
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}

		return c.Next()
	}
}

// CurrentUsername extracts the authenticated username from context.
func CurrentUsername(c *fiber.Ctx) (string, bool) {
	value := c.Locals(usernameContextKey)
	if value == nil {
		return "", false
	}

	if username, ok := value.(string); ok {
		return username, true
	}

	return "", false
}
