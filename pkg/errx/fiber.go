package errx

import (
	"errors"

	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// FiberHandler is a fiber.ErrorHandler rendering *Error values as JSON.
// Fiber errors keep their status; anything else becomes a 500 without
// leaking its message.
func FiberHandler(c *fiber.Ctx, err error) error {
	requestID := c.Get(fiber.HeaderXRequestID)

	logx.WithFields(logx.Fields{
		"path":       c.Path(),
		"method":     c.Method(),
		"ip":         c.IP(),
		"request_id": requestID,
	}).WithError(err).Warn("request failed")

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error":      fe.Message,
			"code":       "HTTP_ERROR",
			"status":     fe.Code,
			"request_id": requestID,
		})
	}

	if e, ok := As(err); ok {
		body := fiber.Map{
			"error":      e.Message,
			"code":       e.Code,
			"type":       string(e.Type),
			"status":     e.HTTPStatus,
			"request_id": requestID,
		}
		if len(e.Details) > 0 {
			body["details"] = e.Details
		}
		return c.Status(e.HTTPStatus).JSON(body)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":      "Internal Server Error",
		"code":       "INTERNAL_ERROR",
		"type":       string(TypeInternal),
		"status":     fiber.StatusInternalServerError,
		"request_id": requestID,
	})
}
