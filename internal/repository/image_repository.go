package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eduforge/api/internal/models"
)

var ErrImageNotFound = errors.New("image not found")

type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

func (r *ImageRepository) Create(ctx context.Context, image models.Image) error {
	const query = `
		INSERT INTO images (
			id, owner_subject, topic, grade_level, subject, visual_type,
			instructions, language, image_url, difficulty, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		image.ID,
		image.OwnerSubject,
		image.Topic,
		image.GradeLevel,
		image.Subject,
		image.VisualType,
		image.Instructions,
		image.Language,
		image.ImageURL,
		image.Difficulty,
		image.Status,
	)
	return err
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (models.Image, error) {
	const query = `
		SELECT id, owner_subject, topic, grade_level, subject, visual_type,
		       instructions, language, image_url, difficulty, status, created_at
		FROM images WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var image models.Image
	if err := scanImage(row, &image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Image{}, ErrImageNotFound
		}
		return models.Image{}, err
	}
	return image, nil
}

func (r *ImageRepository) ListByOwner(ctx context.Context, subject string, limit, offset int) ([]models.Image, error) {
	const query = `
		SELECT id, owner_subject, topic, grade_level, subject, visual_type,
		       instructions, language, image_url, difficulty, status, created_at
		FROM images
		WHERE owner_subject = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, subject, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		var image models.Image
		if err := scanImage(rows, &image); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

// PurgeStale drops records the generation workflow never finished.
func (r *ImageRepository) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		DELETE FROM images
		WHERE status != 'success' AND created_at < $1
	`
	tag, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanImage(row pgx.Row, image *models.Image) error {
	return row.Scan(
		&image.ID,
		&image.OwnerSubject,
		&image.Topic,
		&image.GradeLevel,
		&image.Subject,
		&image.VisualType,
		&image.Instructions,
		&image.Language,
		&image.ImageURL,
		&image.Difficulty,
		&image.Status,
		&image.CreatedAt,
	)
}
