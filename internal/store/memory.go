package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/questforge/questforge-backend/internal/models"
)

// MemoryUsers is a mutex-guarded in-memory UserRepository. It backs the
// service tests and local runs without a MongoDB instance. Patches are
// applied under one lock acquisition, mirroring the single-document
// atomicity of the Mongo implementation.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]*models.User)}
}

func (r *MemoryUsers) Insert(ctx context.Context, user *models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID.Hex()] = cloneUser(user)
	return user.ID.Hex(), nil
}

func (r *MemoryUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *MemoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.Username == username })
}

func (r *MemoryUsers) findBy(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if match(user) {
			return cloneUser(user), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUsers) Update(ctx context.Context, id string, patch UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	if patch.IsZero() {
		return nil
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.Points != nil {
		user.Points = *patch.Points
	}
	if patch.SetEnemy {
		user.Enemy = cloneEnemy(patch.Enemy)
	}
	if patch.EnemyHealthModifier != nil {
		user.EnemyHealthModifier = *patch.EnemyHealthModifier
	}
	if patch.SetInventory {
		user.Inventory = cloneStrings(patch.Inventory)
	}
	if patch.SetChallengeStatuses {
		user.ChallengeStatuses = cloneStatuses(patch.ChallengeStatuses)
	}
	if patch.SetLastStreakDate {
		user.LastStreakDate = cloneTime(patch.LastStreakDate)
	}
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryUsers) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// MemoryChallenges is an in-memory ChallengeRepository preserving
// insertion order.
type MemoryChallenges struct {
	mu         sync.Mutex
	challenges []models.Challenge
}

func NewMemoryChallenges() *MemoryChallenges {
	return &MemoryChallenges{}
}

func (r *MemoryChallenges) FindAll(ctx context.Context) ([]models.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Challenge(nil), r.challenges...), nil
}

func (r *MemoryChallenges) InsertMany(ctx context.Context, challenges []models.Challenge) ([]models.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range challenges {
		if challenges[i].ID.IsZero() {
			challenges[i].ID = primitive.NewObjectID()
		}
		r.challenges = append(r.challenges, challenges[i])
	}
	return challenges, nil
}

func (r *MemoryChallenges) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ch := range r.challenges {
		if ch.ID.Hex() == id {
			r.challenges = append(r.challenges[:i], r.challenges[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// MemoryItems is an in-memory ItemRepository.
type MemoryItems struct {
	mu    sync.Mutex
	items map[string]models.Item
}

func NewMemoryItems() *MemoryItems {
	return &MemoryItems{items: make(map[string]models.Item)}
}

func (r *MemoryItems) FindByID(ctx context.Context, id string) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *MemoryItems) InsertMany(ctx context.Context, items []models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
		r.items[items[i].ID.Hex()] = items[i]
	}
	return nil
}

func (r *MemoryItems) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

// MemoryEnemyTemplates is an in-memory EnemyTemplateRepository.
type MemoryEnemyTemplates struct {
	mu        sync.Mutex
	templates []models.EnemyTemplate
}

func NewMemoryEnemyTemplates() *MemoryEnemyTemplates {
	return &MemoryEnemyTemplates{}
}

func (r *MemoryEnemyTemplates) FindAll(ctx context.Context) ([]models.EnemyTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.EnemyTemplate(nil), r.templates...), nil
}

func (r *MemoryEnemyTemplates) InsertMany(ctx context.Context, templates []models.EnemyTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range templates {
		if templates[i].ID.IsZero() {
			templates[i].ID = primitive.NewObjectID()
		}
		r.templates = append(r.templates, templates[i])
	}
	return nil
}

func (r *MemoryEnemyTemplates) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.templates)), nil
}

func cloneUser(u *models.User) *models.User {
	out := *u
	out.Enemy = cloneEnemy(u.Enemy)
	out.Inventory = cloneStrings(u.Inventory)
	out.ChallengeStatuses = cloneStatuses(u.ChallengeStatuses)
	out.LastStreakDate = cloneTime(u.LastStreakDate)
	return &out
}

// cloneStrings copies a slice preserving nil-vs-empty, so an explicit
// empty list written through a patch stays an empty list, matching the
// empty array the Mongo implementation persists.
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneStatuses(s []models.ChallengeStatus) []models.ChallengeStatus {
	if s == nil {
		return nil
	}
	out := make([]models.ChallengeStatus, len(s))
	copy(out, s)
	return out
}

func cloneEnemy(e *models.Enemy) *models.Enemy {
	if e == nil {
		return nil
	}
	out := *e
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}
