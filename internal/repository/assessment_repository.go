package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eduforge/api/internal/models"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

type AssessmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (models.Assessment, error) {
	const query = `
		SELECT id, owner_subject, title, data, created_at
		FROM assessments WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var assessment models.Assessment
	if err := row.Scan(
		&assessment.ID,
		&assessment.OwnerSubject,
		&assessment.Title,
		&assessment.Data,
		&assessment.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Assessment{}, ErrAssessmentNotFound
		}
		return models.Assessment{}, err
	}
	return assessment, nil
}
