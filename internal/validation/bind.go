package validation

import "github.com/gofiber/fiber/v2"

type Request interface {
	Validate() error
}

// Bind decodes the request body into req and validates it.
func Bind(c *fiber.Ctx, req Request) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return req.Validate()
}
