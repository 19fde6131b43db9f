// Package store defines the narrow persistence contract the engines
// depend on, with a MongoDB implementation for production and an
// in-memory implementation for tests and local runs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/questforge/questforge-backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// UserPatch describes a partial update to a user document. Nil pointer
// fields are left untouched; slice and nullable fields are applied only
// when their Set flag is true so that an explicit empty value can be
// written. A patch is applied as one atomic document update.
type UserPatch struct {
	Username     *string
	PasswordHash *string
	Points       *int

	Enemy    *models.Enemy
	SetEnemy bool

	EnemyHealthModifier *int

	Inventory    []string
	SetInventory bool

	ChallengeStatuses    []models.ChallengeStatus
	SetChallengeStatuses bool

	LastStreakDate    *time.Time
	SetLastStreakDate bool
}

// IsZero reports whether the patch changes nothing.
func (p UserPatch) IsZero() bool {
	return p.Username == nil && p.PasswordHash == nil && p.Points == nil &&
		!p.SetEnemy && p.EnemyHealthModifier == nil && !p.SetInventory &&
		!p.SetChallengeStatuses && !p.SetLastStreakDate
}

type UserRepository interface {
	Insert(ctx context.Context, user *models.User) (string, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, id string, patch UserPatch) error
	Delete(ctx context.Context, id string) error
}

type ChallengeRepository interface {
	FindAll(ctx context.Context) ([]models.Challenge, error)
	// InsertMany inserts the challenges and returns them with their
	// generated ids, preserving order.
	InsertMany(ctx context.Context, challenges []models.Challenge) ([]models.Challenge, error)
	Delete(ctx context.Context, id string) error
}

type ItemRepository interface {
	FindByID(ctx context.Context, id string) (*models.Item, error)
	InsertMany(ctx context.Context, items []models.Item) error
	Count(ctx context.Context) (int64, error)
}

type EnemyTemplateRepository interface {
	FindAll(ctx context.Context) ([]models.EnemyTemplate, error)
	InsertMany(ctx context.Context, templates []models.EnemyTemplate) error
	Count(ctx context.Context) (int64, error)
}
