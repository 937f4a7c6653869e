package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eduforge/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, subject, display_name, email, role, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		)
		ON CONFLICT (subject) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Subject,
		user.DisplayName,
		user.Email,
		user.Role,
	)
	return err
}

func (r *UserRepository) FindBySubject(ctx context.Context, subject string) (models.User, error) {
	const query = `
		SELECT id, subject, display_name, email, role, created_at, updated_at
		FROM users WHERE subject = $1
	`

	row := r.pool.QueryRow(ctx, query, subject)
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Subject,
		&user.DisplayName,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
