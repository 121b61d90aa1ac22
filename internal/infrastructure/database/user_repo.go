package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

// UserRepository persists lazily created users keyed by their Discord id.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindOrCreate upserts the user. An empty name never overwrites a cached one.
func (r *UserRepository) FindOrCreate(ctx context.Context, id int64, name string) (*entities.User, error) {
	var user entities.User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name), updated_at = now()
		RETURNING id, name, created_at, updated_at`,
		id, name).Scan(&user.ID, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	var user entities.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at FROM users WHERE id = $1`,
		id).Scan(&user.ID, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
