package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eduforge/api/internal/models"
)

var ErrContentNotFound = errors.New("content not found")

type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

func (r *ContentRepository) GetByID(ctx context.Context, id string) (models.Content, error) {
	const query = `
		SELECT id, owner_subject, title, data, created_at
		FROM content WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var content models.Content
	if err := row.Scan(
		&content.ID,
		&content.OwnerSubject,
		&content.Title,
		&content.Data,
		&content.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Content{}, ErrContentNotFound
		}
		return models.Content{}, err
	}
	return content, nil
}
