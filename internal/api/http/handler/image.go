package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AznStevy/bme590final/internal/logger"
	"github.com/AznStevy/bme590final/internal/model"
	"github.com/AznStevy/bme590final/internal/validation"
)

// ImageService defines business operations for image provenance.
type ImageService interface {
	AddImage(ctx context.Context, userID string, req map[string]any) (model.Image, error)
	FindImage(ctx context.Context, imageID string) (model.Image, error)
	FindImagePayload(ctx context.Context, imageID string) ([]byte, error)
	FindImageParent(ctx context.Context, imageID string) (model.Image, error)
	FindImageChildren(ctx context.Context, imageID string) ([]model.Image, error)
	UpdateDescription(ctx context.Context, imageID, description string) (bool, error)
	RemoveImage(ctx context.Context, imageID string) error
}

// Image handles HTTP endpoints for images.
type Image struct {
	service ImageService
	logger  *logger.Logger
}

func NewImage(service ImageService, logger *logger.Logger) *Image {
	return &Image{
		service: service,
		logger:  logger,
	}
}

type imageResponse struct {
	ImageID        string    `json:"image_id"`
	UserID         string    `json:"user_id"`
	Timestamp      time.Time `json:"timestamp"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Format         string    `json:"format"`
	Description    string    `json:"description"`
	ProcessingTime int       `json:"processing_time"`
	Process        string    `json:"process"`
	ProcessHistory []string  `json:"process_history"`
	ChildIDs       []string  `json:"child_ids"`
}

func toImageResponse(image model.Image) imageResponse {
	return imageResponse{
		ImageID:        image.ID,
		UserID:         image.UserID,
		Timestamp:      image.CreatedAt,
		Width:          image.Width,
		Height:         image.Height,
		Format:         string(image.Format),
		Description:    image.Description,
		ProcessingTime: image.ProcessingTime,
		Process:        image.Process,
		ProcessHistory: image.ProcessHistory,
		ChildIDs:       image.ChildIDs,
	}
}

// AddImage handles POST /api/users/:id/images.
func (h *Image) AddImage(c *fiber.Ctx) error {
	userID := c.Params("id")

	var req map[string]any
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return handleError(c, &validation.Error{Kind: validation.KindInvalidShape})
	}

	image, err := h.service.AddImage(c.Context(), userID, req)
	if err != nil {
		h.logger.Error("add image failed", "user_id", userID, "error", err)
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toImageResponse(image))
}

// GetImage handles GET /api/images/:id.
func (h *Image) GetImage(c *fiber.Ctx) error {
	image, err := h.service.FindImage(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toImageResponse(image))
}

// GetImagePayload handles GET /api/images/:id/payload, returning the
// stored payload re-encoded as base64.
func (h *Image) GetImagePayload(c *fiber.Ctx) error {
	data, err := h.service.FindImagePayload(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{
		"image_id": c.Params("id"),
		"image":    base64.StdEncoding.EncodeToString(data),
	})
}

// GetImageParent handles GET /api/images/:id/parent.
func (h *Image) GetImageParent(c *fiber.Ctx) error {
	parent, err := h.service.FindImageParent(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(toImageResponse(parent))
}

// GetImageChildren handles GET /api/images/:id/children.
func (h *Image) GetImageChildren(c *fiber.Ctx) error {
	children, err := h.service.FindImageChildren(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}

	resp := make([]imageResponse, 0, len(children))
	for _, child := range children {
		resp = append(resp, toImageResponse(child))
	}
	return c.JSON(resp)
}

type updateDescriptionRequest struct {
	Description string `json:"description"`
}

// UpdateDescription handles PATCH /api/images/:id/description.
func (h *Image) UpdateDescription(c *fiber.Ctx) error {
	var req updateDescriptionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return handleError(c, &validation.Error{Kind: validation.KindInvalidShape})
	}

	updated, err := h.service.UpdateDescription(c.Context(), c.Params("id"), req.Description)
	if err != nil {
		return handleError(c, err)
	}
	if !updated {
		return handleError(c, model.ErrNotFound)
	}
	return c.JSON(fiber.Map{"image_id": c.Params("id"), "updated": true})
}

// DeleteImage handles DELETE /api/images/:id. Removal leaves parent child
// sets and descendant histories untouched.
func (h *Image) DeleteImage(c *fiber.Ctx) error {
	if err := h.service.RemoveImage(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
