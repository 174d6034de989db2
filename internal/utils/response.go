package utils

import "github.com/gofiber/fiber/v2"

// Envelope is the uniform response body shape used by every endpoint.
type Envelope struct {
	Code      int         `json:"code"`
	IsSuccess bool        `json:"isSuccess"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
}

// Success writes a successful response in the standard envelope.
func Success(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(Envelope{
		Code:      code,
		IsSuccess: true,
		Message:   message,
		Data:      data,
	})
}

// Error writes a failed response in the standard envelope.
func Error(c *fiber.Ctx, code int, message string) error {
	return ErrorWithData(c, code, message, nil)
}

// ErrorWithData writes a failed response carrying extra payload, such as the
// request correlation id on infrastructure failures.
func ErrorWithData(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(Envelope{
		Code:      code,
		IsSuccess: false,
		Message:   message,
		Data:      data,
	})
}
