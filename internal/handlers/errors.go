package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/communityhub/internal/middleware"
	"github.com/example/communityhub/internal/utils"
)

// ErrorHandler maps errors escaping the handlers into the response envelope.
// Workflow rejections keep their status and message; anything else is an
// infrastructure failure, logged in full server-side and reported to the
// client as a generic 500 carrying only the correlation id.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) && ferr.Code < fiber.StatusInternalServerError {
		return utils.Error(c, ferr.Code, ferr.Message)
	}

	requestID := middleware.RequestID(c)
	log := middleware.Logger(c)
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")

	return utils.ErrorWithData(c, fiber.StatusInternalServerError, "internal server error", fiber.Map{
		"requestId": requestID,
	})
}
