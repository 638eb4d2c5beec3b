package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tasknest/services"
	"tasknest/utils"
)

// StatusResponse is the minimal success/failure envelope used by every
// mutation endpoint.
type StatusResponse struct {
	Success bool `json:"success"`
}

func statusResponse(c *fiber.Ctx, code int, success bool) error {
	return c.Status(code).JSON(StatusResponse{Success: success})
}

// handleServiceError maps service errors to transport responses. Not-found
// and forbidden are reported identically; anything unexpected is logged and
// reported to Sentry.
func handleServiceError(c *fiber.Ctx, err error, context map[string]interface{}) error {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return statusResponse(c, fiber.StatusNotFound, false)
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": verr.Error(),
			"field": verr.Field,
		})
	default:
		utils.LogError("store_failure", err, context)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
