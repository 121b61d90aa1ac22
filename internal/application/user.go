package application

import (
	"context"
	"fmt"

	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/input"
	"slotbot/internal/ports/output"
)

// UserService resolves user references. Users are never pre-registered: the
// first reference creates them, later references refresh the cached name.
type UserService struct {
	users output.UserRepository
}

func NewUserService(users output.UserRepository) *UserService {
	return &UserService{users: users}
}

// Find resolves a user reference to a persisted user, creating it on first
// sight.
func (s *UserService) Find(ctx context.Context, ref input.UserRef) (*entities.User, error) {
	user, err := s.users.FindOrCreate(ctx, ref.ID, ref.Name)
	if err != nil {
		return nil, fmt.Errorf("find or create user %d: %w", ref.ID, err)
	}
	return user, nil
}

// Name returns the cached display name for a user id, falling back to the
// numeric id when the user is unknown.
func (s *UserService) Name(ctx context.Context, id int64) string {
	user, err := s.users.FindByID(ctx, id)
	if err != nil || user.Name == "" {
		return fmt.Sprintf("%d", id)
	}
	return user.Name
}
