package studentController

import (
	"errors"

	"sprout/middleware"
	"sprout/progression"

	"github.com/gofiber/fiber/v2"
)

// respondProgressionError maps core errors onto HTTP statuses
func respondProgressionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progression.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case errors.Is(err, progression.ErrPreconditionFailed):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case errors.Is(err, progression.ErrConflictDuplicate):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Duplicate submission detected. Please wait before submitting again.", nil)
	case errors.Is(err, progression.ErrTransactionConflict):
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Temporary conflict, please retry.", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error!", nil)
	}
}
