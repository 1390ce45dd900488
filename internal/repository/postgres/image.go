package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AznStevy/bme590final/internal/model"
)

var _ model.ImageStore = (*ImageRepository)(nil)

type ImageRepository struct {
	db *Connection
}

func NewImageRepository(db *Connection) *ImageRepository {
	return &ImageRepository{
		db: db,
	}
}

const imageColumns = `id, user_id, created_at, width, height, format, description,
		processing_time, process, process_history, child_ids, blob_key`

func (r *ImageRepository) Create(ctx context.Context, image model.Image) (model.Image, error) {
	query := `INSERT INTO images (id, user_id, created_at, width, height, format, description,
				processing_time, process, process_history, child_ids, blob_key)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + imageColumns

	if image.ProcessHistory == nil {
		image.ProcessHistory = []string{}
	}
	if image.ChildIDs == nil {
		image.ChildIDs = []string{}
	}

	row := r.db.QueryRow(ctx, query,
		image.ID, image.UserID, image.CreatedAt, image.Width, image.Height,
		string(image.Format), image.Description, image.ProcessingTime, image.Process,
		image.ProcessHistory, image.ChildIDs, image.BlobKey,
	)
	saved, err := scanImage(row)
	if err != nil {
		return model.Image{}, fmt.Errorf("failed to create image: %w", err)
	}
	return saved, nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`

	image, err := scanImage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Image{}, model.ErrNotFound
		}
		return model.Image{}, fmt.Errorf("failed to get image by id: %w", err)
	}
	return image, nil
}

func (r *ImageRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images
			  WHERE id = ANY($1)
			  ORDER BY array_position($1, id)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get images by ids: %w", err)
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return images, nil
}

// AppendChild adds childID to the parent's child set in a single statement,
// so concurrent appends never lose each other's writes.
func (r *ImageRepository) AppendChild(ctx context.Context, parentID, childID string) error {
	query := `UPDATE images
			  SET child_ids = CASE
				  WHEN $2 = ANY(child_ids) THEN child_ids
				  ELSE array_append(child_ids, $2)
			  END
			  WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, parentID, childID)
	if err != nil {
		return fmt.Errorf("failed to append child id: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ImageRepository) RemoveChild(ctx context.Context, parentID, childID string) error {
	query := `UPDATE images SET child_ids = array_remove(child_ids, $2) WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, parentID, childID); err != nil {
		return fmt.Errorf("failed to remove child id: %w", err)
	}
	return nil
}

func (r *ImageRepository) UpdateDescription(ctx context.Context, id, description string) (bool, error) {
	query := `UPDATE images SET description = $2 WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, description)
	if err != nil {
		return false, fmt.Errorf("failed to update description: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM images WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanImage(row pgx.Row) (model.Image, error) {
	var image model.Image
	var format string
	err := row.Scan(
		&image.ID, &image.UserID, &image.CreatedAt, &image.Width, &image.Height,
		&format, &image.Description, &image.ProcessingTime, &image.Process,
		&image.ProcessHistory, &image.ChildIDs, &image.BlobKey,
	)
	if err != nil {
		return model.Image{}, err
	}
	image.Format = model.Format(format)
	return image, nil
}
