package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AznStevy/bme590final/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	var user model.User
	query := `SELECT id, uploads, created_at FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Uploads, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, uploads)
			  VALUES ($1, $2)
			  RETURNING id, uploads, created_at`

	if user.Uploads == nil {
		user.Uploads = map[string]string{}
	}

	var savedUser model.User
	err := r.db.QueryRow(ctx, query, user.ID, user.Uploads).Scan(
		&savedUser.ID, &savedUser.Uploads, &savedUser.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.User{}, model.ErrDuplicateUser
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

// SetUpload upserts uploads[rootID] = recentID with a single jsonb merge,
// so concurrent ledger writes for different roots never lose each other.
func (r *UserRepository) SetUpload(ctx context.Context, userID, rootID, recentID string) error {
	query := `UPDATE users SET uploads = uploads || jsonb_build_object($2::text, $3::text) WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, rootID, recentID)
	if err != nil {
		return fmt.Errorf("failed to set upload: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
