package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/photoalbums-backend/internal/errs"
	"github.com/sefazor/photoalbums-backend/internal/models"
)

// respondError maps the sentinel taxonomy onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message so internals do not leak.
func respondError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, errs.ErrUnsupportedMedia):
		status = fiber.StatusUnsupportedMediaType
	case errors.Is(err, errs.ErrBadRequest):
		status = fiber.StatusBadRequest
	case errors.Is(err, errs.ErrServiceUnavailable):
		status = fiber.StatusServiceUnavailable
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
	}
	return c.Status(status).JSON(models.ErrorResponse(err.Error()))
}
