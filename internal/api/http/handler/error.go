package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/AznStevy/bme590final/internal/model"
	"github.com/AznStevy/bme590final/internal/validation"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// handleError maps domain error kinds to HTTP statuses. Every condition
// stays distinguishable by the "kind" field of the response body.
func handleError(c *fiber.Ctx, err error) error {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		status := fiber.StatusBadRequest
		if vErr.Kind == validation.KindUnknownProcess {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(errorResponse{
			Error: errorBody{Kind: string(vErr.Kind), Message: vErr.Error()},
		})
	case errors.Is(err, model.ErrNoParent):
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{
			Error: errorBody{Kind: "no_parent", Message: err.Error()},
		})
	case errors.Is(err, model.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{
			Error: errorBody{Kind: "not_found", Message: err.Error()},
		})
	case errors.Is(err, model.ErrDuplicateUser):
		return c.Status(fiber.StatusConflict).JSON(errorResponse{
			Error: errorBody{Kind: "duplicate_user", Message: err.Error()},
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Error: errorBody{Kind: "internal", Message: "internal server error"},
		})
	}
}
