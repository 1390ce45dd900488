package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AznStevy/bme590final/internal/logger"
	"github.com/AznStevy/bme590final/internal/model"
	"github.com/AznStevy/bme590final/internal/validation"
)

// UserService defines business operations for user management.
type UserService interface {
	AddUser(ctx context.Context, userID string) (model.User, error)
	FindUser(ctx context.Context, userID string) (model.User, error)
}

// User handles HTTP endpoints for users.
type User struct {
	service UserService
	logger  *logger.Logger
}

func NewUser(service UserService, logger *logger.Logger) *User {
	return &User{
		service: service,
		logger:  logger,
	}
}

type userResponse struct {
	UserID    string            `json:"user_id"`
	Uploads   map[string]string `json:"uploads"`
	CreatedAt time.Time         `json:"created_at"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		UserID:    user.ID,
		Uploads:   user.Uploads,
		CreatedAt: user.CreatedAt,
	}
}

type createUserRequest struct {
	UserID string `json:"user_id"`
}

// CreateUser handles POST /api/users.
func (h *User) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return handleError(c, &validation.Error{Kind: validation.KindInvalidShape})
	}
	if req.UserID == "" {
		return handleError(c, &validation.Error{Kind: validation.KindMissingField, Field: "user_id"})
	}

	user, err := h.service.AddUser(c.Context(), req.UserID)
	if err != nil {
		h.logger.Error("add user failed", "user_id", req.UserID, "error", err)
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// GetUser handles GET /api/users/:id.
func (h *User) GetUser(c *fiber.Ctx) error {
	user, err := h.service.FindUser(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toUserResponse(user))
}
