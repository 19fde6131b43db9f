package services

import (
	"context"
	"errors"
	"time"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/store"
)

// StreakService tracks the user's daily streak timestamp.
type StreakService struct {
	users store.UserRepository
}

func NewStreakService(users store.UserRepository) *StreakService {
	return &StreakService{users: users}
}

// Continue stamps the user's streak with the current time.
func (s *StreakService) Continue(ctx context.Context, userID string) (time.Time, error) {
	now := time.Now().UTC()
	err := s.users.Update(ctx, userID, store.UserPatch{
		LastStreakDate:    &now,
		SetLastStreakDate: true,
	})
	if errors.Is(err, store.ErrNotFound) {
		return time.Time{}, apperrors.NotFound("User not found.")
	}
	if err != nil {
		return time.Time{}, apperrors.Internal("failed to update streak", err)
	}
	return now, nil
}

// Info returns the user's last streak date, nil when the streak has
// never been continued.
func (s *StreakService) Info(ctx context.Context, userID string) (*time.Time, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("User not found.")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	return user.LastStreakDate, nil
}
