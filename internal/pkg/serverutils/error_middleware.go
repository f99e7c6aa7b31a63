package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts service errors into JSON responses.
// *fiber.Error keeps its status; "not found" errors map to 404, the
// rest become 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		status := fiber.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = fiber.StatusNotFound
		}

		return ctx.Status(status).JSON(fiber.Map{"message": err.Error()})
	}
}
