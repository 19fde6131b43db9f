package services

import (
	"context"
	"math/rand"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/store"
)

const (
	// BaseEnemyHP is the health of a freshly spawned enemy before the
	// user's accumulated modifier is added.
	BaseEnemyHP = 100
	// ModifierStep is added to the user's health modifier on every kill.
	ModifierStep = 10
)

// EnemyInfo is the post-transaction combat state returned to the client.
type EnemyInfo struct {
	Name           string `json:"name"`
	Image          string `json:"image"`
	Health         int    `json:"health"`
	Points         int    `json:"points"`
	HealthModifier int    `json:"healthModifier"`
}

// CombatService runs the enemy health/points state machine. Every branch
// persists through exactly one document update, so a concurrent reader
// never sees points deducted without the matching health change.
type CombatService struct {
	users     store.UserRepository
	templates store.EnemyTemplateRepository

	// overridable in tests
	pick func(n int) int
}

func NewCombatService(users store.UserRepository, templates store.EnemyTemplateRepository) *CombatService {
	return &CombatService{users: users, templates: templates, pick: rand.Intn}
}

// spawn rolls a template and builds an enemy with health scaled by the
// user's modifier. Falls back to the embedded template set when the
// enemies collection is empty or unreadable.
func (s *CombatService) spawn(ctx context.Context, modifier int) *models.Enemy {
	pool := DefaultEnemyTemplates
	if templates, err := s.templates.FindAll(ctx); err == nil && len(templates) > 0 {
		pool = templates
	}
	tpl := pool[s.pick(len(pool))]
	return &models.Enemy{
		Name:   tpl.Name,
		Image:  tpl.Image,
		Health: BaseEnemyHP + modifier,
	}
}

// Info returns the user's current enemy, lazily spawning and persisting
// one on first read.
func (s *CombatService) Info(ctx context.Context, user *models.User) (*EnemyInfo, error) {
	if user.Enemy == nil {
		enemy := s.spawn(ctx, user.EnemyHealthModifier)
		err := s.users.Update(ctx, user.ID.Hex(), store.UserPatch{Enemy: enemy, SetEnemy: true})
		if err != nil {
			return nil, apperrors.Internal("failed to spawn enemy", err)
		}
		user.Enemy = enemy
	}
	return s.info(user), nil
}

// Damage applies damage to the user's enemy, spending the user's points.
// A nil damage means a full commit of all available points. The applied
// damage is clamped to min(damage, points, enemy health): no overkill
// credit, points never go negative. A kill bumps the health modifier by
// ModifierStep and rolls a fresh enemy.
func (s *CombatService) Damage(ctx context.Context, user *models.User, damage *int) (*EnemyInfo, error) {
	dmg := user.Points
	if damage != nil {
		dmg = *damage
	}
	if dmg <= 0 {
		return nil, apperrors.Validation("Damage must be a positive amount of points.")
	}

	enemy := user.Enemy
	if enemy == nil {
		enemy = s.spawn(ctx, user.EnemyHealthModifier)
	}

	clamped := dmg
	if user.Points < clamped {
		clamped = user.Points
	}
	if enemy.Health < clamped {
		clamped = enemy.Health
	}

	newHealth := enemy.Health - clamped
	newPoints := user.Points - clamped

	if newHealth <= 0 {
		modifier := user.EnemyHealthModifier + ModifierStep
		fresh := s.spawn(ctx, modifier)
		err := s.users.Update(ctx, user.ID.Hex(), store.UserPatch{
			Enemy:               fresh,
			SetEnemy:            true,
			EnemyHealthModifier: &modifier,
			Points:              &newPoints,
		})
		if err != nil {
			return nil, apperrors.Internal("failed to respawn enemy", err)
		}
		user.Enemy = fresh
		user.EnemyHealthModifier = modifier
		user.Points = newPoints
		return s.info(user), nil
	}

	hurt := &models.Enemy{Name: enemy.Name, Image: enemy.Image, Health: newHealth}
	err := s.users.Update(ctx, user.ID.Hex(), store.UserPatch{
		Enemy:    hurt,
		SetEnemy: true,
		Points:   &newPoints,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to damage enemy", err)
	}
	user.Enemy = hurt
	user.Points = newPoints
	return s.info(user), nil
}

func (s *CombatService) info(user *models.User) *EnemyInfo {
	return &EnemyInfo{
		Name:           user.Enemy.Name,
		Image:          user.Enemy.Image,
		Health:         user.Enemy.Health,
		Points:         user.Points,
		HealthModifier: user.EnemyHealthModifier,
	}
}
