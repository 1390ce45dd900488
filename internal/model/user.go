package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	SetUpload(ctx context.Context, userID, rootID, recentID string) error
}

// User represents a stored user and their upload ledger.
//
// Uploads maps a lineage-root image id to the most recently produced
// image id in that lineage. One entry per distinct root the user has
// ever uploaded under.
type User struct {
	ID        string
	Uploads   map[string]string
	CreatedAt time.Time
}
