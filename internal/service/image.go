package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AznStevy/bme590final/internal/logger"
	"github.com/AznStevy/bme590final/internal/model"
	"github.com/AznStevy/bme590final/internal/validation"
)

// Image orchestrates validation, lineage linkage, the user upload ledger
// and payload storage into the public image operations.
type Image struct {
	images    model.ImageStore
	users     model.UserStore
	blobs     model.Storage
	validator *validation.Validator
	logger    *logger.Logger
	now       func() time.Time
}

func NewImage(
	images model.ImageStore,
	users model.UserStore,
	blobs model.Storage,
	validator *validation.Validator,
	logger *logger.Logger,
) *Image {
	return &Image{
		images:    images,
		users:     users,
		blobs:     blobs,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// AddImage validates the request, links the image into its lineage,
// records the upload in the user's ledger, stores the decoded payload and
// persists the image record.
//
// A request without parent_id creates a lineage root (empty history). With
// parent_id, the new history is the parent's history plus the parent id,
// and the parent's child set gains the new image's id.
//
// The flow is not transactional; on a late failure the parent child-link
// and uploaded payload are reverted best-effort and the error is returned.
func (s *Image) AddImage(ctx context.Context, userID string, req map[string]any) (model.Image, error) {
	params, err := s.validator.Validate(ctx, req)
	if err != nil {
		return model.Image{}, fmt.Errorf("invalid image request: %w", err)
	}
	params.UserID = userID

	history, err := s.resolveLineage(ctx, params)
	if err != nil {
		return model.Image{}, err
	}

	// Ledger chain includes the new image's own id as the tail, so a
	// lineage root registers under its own id.
	chain := append(slices.Clone(history), params.ID)
	if err := s.recordUpload(ctx, userID, chain); err != nil {
		s.unlinkParent(ctx, params)
		return model.Image{}, fmt.Errorf("failed to record upload: %w", err)
	}

	blobKey := s.blobKey(userID, params.ID)
	if err := s.blobs.Put(ctx, blobKey, params.Data); err != nil {
		s.unlinkParent(ctx, params)
		return model.Image{}, fmt.Errorf("failed to store image payload: %w", err)
	}

	image := model.Image{
		ID:             params.ID,
		UserID:         userID,
		CreatedAt:      s.now(),
		Width:          params.Width,
		Height:         params.Height,
		Format:         params.Format,
		Description:    params.Description,
		ProcessingTime: params.ProcessingTime,
		Process:        params.Process,
		ProcessHistory: history,
		BlobKey:        blobKey,
	}

	saved, err := s.images.Create(ctx, image)
	if err != nil {
		if delErr := s.blobs.Delete(ctx, blobKey); delErr != nil {
			s.logger.Error("failed to delete payload after create failure", "blob_key", blobKey, "error", delErr)
		}
		s.unlinkParent(ctx, params)
		return model.Image{}, fmt.Errorf("failed to create image: %w", err)
	}

	return saved, nil
}

// resolveLineage computes the new image's process history and, for a
// derived image, appends the child id to the parent record.
func (s *Image) resolveLineage(ctx context.Context, params model.CreateImageParams) ([]string, error) {
	if !params.HasParent {
		return []string{}, nil
	}

	parent, err := s.images.GetByID(ctx, params.ParentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("parent image %q: %w", params.ParentID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get parent image: %w", err)
	}

	if err := s.images.AppendChild(ctx, parent.ID, params.ID); err != nil {
		return nil, fmt.Errorf("failed to link child to parent: %w", err)
	}

	return append(slices.Clone(parent.ProcessHistory), parent.ID), nil
}

// recordUpload upserts uploads[chain[0]] = chain[len-1] for the user,
// auto-provisioning the user on first upload.
func (s *Image) recordUpload(ctx context.Context, userID string, chain []string) error {
	rootID := chain[0]
	recentID := chain[len(chain)-1]

	_, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		_, err = s.users.Create(ctx, model.User{
			ID:        userID,
			Uploads:   map[string]string{},
			CreatedAt: s.now(),
		})
		// A concurrent first upload may have provisioned the user already.
		if err != nil && !errors.Is(err, model.ErrDuplicateUser) {
			return fmt.Errorf("failed to provision user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return s.users.SetUpload(ctx, userID, rootID, recentID)
}

// unlinkParent reverts the parent child-link append, best-effort.
func (s *Image) unlinkParent(ctx context.Context, params model.CreateImageParams) {
	if !params.HasParent {
		return
	}
	if err := s.images.RemoveChild(ctx, params.ParentID, params.ID); err != nil {
		s.logger.Error("failed to unlink child from parent",
			"parent_id", params.ParentID, "image_id", params.ID, "error", err)
	}
}

// FindImage looks up an image by id.
func (s *Image) FindImage(ctx context.Context, imageID string) (model.Image, error) {
	image, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Image{}, fmt.Errorf("image %q: %w", imageID, model.ErrNotFound)
		}
		return model.Image{}, fmt.Errorf("failed to get image: %w", err)
	}
	return image, nil
}

// FindImagePayload returns the decoded payload of an image.
func (s *Image) FindImagePayload(ctx context.Context, imageID string) ([]byte, error) {
	image, err := s.FindImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	data, err := s.blobs.Get(ctx, image.BlobKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get image payload: %w", err)
	}
	return data, nil
}

// FindImageParent resolves the last element of the image's process history
// to its record. Returns ErrNoParent for a lineage root.
func (s *Image) FindImageParent(ctx context.Context, imageID string) (model.Image, error) {
	image, err := s.FindImage(ctx, imageID)
	if err != nil {
		return model.Image{}, err
	}

	parentID := image.Parent()
	if parentID == "" {
		return model.Image{}, fmt.Errorf("image %q: %w", imageID, model.ErrNoParent)
	}

	parent, err := s.images.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Image{}, fmt.Errorf("parent image %q: %w", parentID, model.ErrNotFound)
		}
		return model.Image{}, fmt.Errorf("failed to get parent image: %w", err)
	}
	return parent, nil
}

// FindImageChildren resolves the image's child ids to records. Children
// dangling after an unrepaired removal are skipped.
func (s *Image) FindImageChildren(ctx context.Context, imageID string) ([]model.Image, error) {
	image, err := s.FindImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if len(image.ChildIDs) == 0 {
		return nil, nil
	}

	children, err := s.images.GetByIDs(ctx, image.ChildIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get child images: %w", err)
	}
	return children, nil
}

// UpdateDescription overwrites the image's description. Returns whether an
// image was found and updated.
func (s *Image) UpdateDescription(ctx context.Context, imageID, description string) (bool, error) {
	updated, err := s.images.UpdateDescription(ctx, imageID, description)
	if err != nil {
		return false, fmt.Errorf("failed to update description: %w", err)
	}
	return updated, nil
}

// RemoveImage deletes the image record and its payload.
//
// DANGER: removal does not update any parent's child set or any
// descendant's process history; those references are left dangling.
func (s *Image) RemoveImage(ctx context.Context, imageID string) error {
	image, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("image %q: %w", imageID, model.ErrNotFound)
		}
		return fmt.Errorf("failed to get image: %w", err)
	}

	if image.BlobKey != "" {
		if err := s.blobs.Delete(ctx, image.BlobKey); err != nil {
			s.logger.Error("failed to delete image payload", "blob_key", image.BlobKey, "error", err)
		}
	}

	if err := s.images.Delete(ctx, imageID); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *Image) blobKey(userID, imageID string) string {
	return fmt.Sprintf("user-%s/image-%s/%s", userID, imageID, uuid.New().String())
}
