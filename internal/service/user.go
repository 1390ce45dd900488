package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AznStevy/bme590final/internal/logger"
	"github.com/AznStevy/bme590final/internal/model"
)

// User handles explicit user operations. Unlike the ledger's
// auto-provisioning, explicit creation fails loudly on a duplicate id.
type User struct {
	users  model.UserStore
	logger *logger.Logger
}

func NewUser(users model.UserStore, logger *logger.Logger) *User {
	return &User{
		users:  users,
		logger: logger,
	}
}

// AddUser creates a user, failing with ErrDuplicateUser if the id exists.
func (s *User) AddUser(ctx context.Context, userID string) (model.User, error) {
	_, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return model.User{}, fmt.Errorf("user %q: %w", userID, model.ErrDuplicateUser)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		ID:      userID,
		Uploads: map[string]string{},
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateUser) {
			return model.User{}, fmt.Errorf("user %q: %w", userID, model.ErrDuplicateUser)
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// FindUser looks up a user by id.
func (s *User) FindUser(ctx context.Context, userID string) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, fmt.Errorf("user %q: %w", userID, model.ErrNotFound)
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
