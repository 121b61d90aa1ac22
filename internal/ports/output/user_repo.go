package output

import (
	"context"

	"slotbot/internal/domain/entities"
)

// UserRepository resolves Discord users. Users are created lazily: FindOrCreate
// is an idempotent upsert that also refreshes the cached display name.
type UserRepository interface {
	FindOrCreate(ctx context.Context, id int64, name string) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
}
