package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report field names as they appear on the wire.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateRequest checks a request body against its validate tags and maps the
// first failure to a 400 naming the offending parameter.
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		if field.Tag() == "required" {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s is a required parameter", field.Field()))
		}
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s is invalid", field.Field()))
	}

	return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
}
