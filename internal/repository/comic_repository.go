package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eduforge/api/internal/models"
)

var ErrComicNotFound = errors.New("comic not found")

type ComicRepository struct {
	pool *pgxpool.Pool
}

func NewComicRepository(pool *pgxpool.Pool) *ComicRepository {
	return &ComicRepository{pool: pool}
}

func (r *ComicRepository) Create(ctx context.Context, comic models.Comic) error {
	panels, err := json.Marshal(comic.Panels)
	if err != nil {
		return fmt.Errorf("encode panels: %w", err)
	}

	const query = `
		INSERT INTO comics (
			id, owner_subject, instructions, grade_level, num_panels,
			language, panels, image_urls, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, NOW()
		)
	`

	_, err = r.pool.Exec(ctx, query,
		comic.ID,
		comic.OwnerSubject,
		comic.Instructions,
		comic.GradeLevel,
		comic.NumPanels,
		comic.Language,
		panels,
		comic.ImageURLs,
		comic.Status,
	)
	return err
}

func (r *ComicRepository) GetByID(ctx context.Context, id string) (models.Comic, error) {
	const query = `
		SELECT id, owner_subject, instructions, grade_level, num_panels,
		       language, panels, image_urls, status, created_at
		FROM comics WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	comic, err := scanComic(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comic{}, ErrComicNotFound
		}
		return models.Comic{}, err
	}
	return comic, nil
}

func (r *ComicRepository) ListByOwner(ctx context.Context, subject string, limit, offset int) ([]models.Comic, error) {
	const query = `
		SELECT id, owner_subject, instructions, grade_level, num_panels,
		       language, panels, image_urls, status, created_at
		FROM comics
		WHERE owner_subject = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, subject, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comics []models.Comic
	for rows.Next() {
		comic, err := scanComic(rows)
		if err != nil {
			return nil, err
		}
		comics = append(comics, comic)
	}
	return comics, rows.Err()
}

func (r *ComicRepository) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		DELETE FROM comics
		WHERE status != 'success' AND created_at < $1
	`
	tag, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanComic(row pgx.Row) (models.Comic, error) {
	var (
		comic  models.Comic
		panels []byte
	)
	if err := row.Scan(
		&comic.ID,
		&comic.OwnerSubject,
		&comic.Instructions,
		&comic.GradeLevel,
		&comic.NumPanels,
		&comic.Language,
		&panels,
		&comic.ImageURLs,
		&comic.Status,
		&comic.CreatedAt,
	); err != nil {
		return models.Comic{}, err
	}
	if len(panels) > 0 {
		if err := json.Unmarshal(panels, &comic.Panels); err != nil {
			return models.Comic{}, fmt.Errorf("decode panels: %w", err)
		}
	}
	return comic, nil
}
