package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/store"
)

// countingUsers counts Update calls so tests can assert the status list
// is only persisted when it actually changed.
type countingUsers struct {
	store.UserRepository
	updates int
}

func (c *countingUsers) Update(ctx context.Context, id string, patch store.UserPatch) error {
	c.updates++
	return c.UserRepository.Update(ctx, id, patch)
}

func newChallengeFixture(t *testing.T) (*ChallengeService, *countingUsers, *store.MemoryChallenges) {
	t.Helper()
	users := &countingUsers{UserRepository: store.NewMemoryUsers()}
	catalog, repo := newCatalogFixture(&stubGenerator{})
	return NewChallengeService(users, catalog), users, repo
}

func seedChallengeUser(t *testing.T, users store.UserRepository, statuses []models.ChallengeStatus, points int) *models.User {
	t.Helper()
	user := &models.User{
		Username:          "quester",
		Email:             "quester@example.com",
		PasswordHash:      "x",
		Points:            points,
		Inventory:         []string{},
		ChallengeStatuses: statuses,
	}
	_, err := users.Insert(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestUserChallengesAddsMissingStatuses(t *testing.T) {
	svc, users, _ := newChallengeFixture(t)
	user := seedChallengeUser(t, users, []models.ChallengeStatus{}, 0)

	infos, err := svc.UserChallenges(context.Background(), user)
	require.NoError(t, err)

	require.Len(t, infos, NumChallenges)
	require.Len(t, user.ChallengeStatuses, NumChallenges)
	for i, info := range infos {
		assert.False(t, info.Completed)
		assert.Equal(t, info.ID, user.ChallengeStatuses[i].ChallengeID)
	}

	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, stored.ChallengeStatuses, NumChallenges)
}

func TestUserChallengesSyncIsIdempotent(t *testing.T) {
	svc, users, _ := newChallengeFixture(t)
	user := seedChallengeUser(t, users, []models.ChallengeStatus{}, 0)

	_, err := svc.UserChallenges(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, 1, users.updates)

	// Already in sync, so the second read writes nothing.
	_, err = svc.UserChallenges(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 1, users.updates)
}

func TestUserChallengesPrunesRemovedStatuses(t *testing.T) {
	svc, users, _ := newChallengeFixture(t)
	stale := []models.ChallengeStatus{
		{ChallengeID: "64a000000000000000000001", Completed: true},
	}
	user := seedChallengeUser(t, users, stale, 0)

	infos, err := svc.UserChallenges(context.Background(), user)
	require.NoError(t, err)

	require.Len(t, infos, NumChallenges)
	for _, st := range user.ChallengeStatuses {
		assert.NotEqual(t, "64a000000000000000000001", st.ChallengeID)
		assert.False(t, st.Completed)
	}
}

func TestUserChallengesReordersScrambledStatuses(t *testing.T) {
	svc, users, _ := newChallengeFixture(t)
	user := seedChallengeUser(t, users, []models.ChallengeStatus{}, 0)

	_, err := svc.UserChallenges(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, user.ChallengeStatuses, NumChallenges)

	// Flag the last challenge, then scramble the stored order.
	completedID := user.ChallengeStatuses[NumChallenges-1].ChallengeID
	scrambled := []models.ChallengeStatus{
		{ChallengeID: completedID, Completed: true},
		user.ChallengeStatuses[0],
		user.ChallengeStatuses[1],
	}
	user.ChallengeStatuses = scrambled

	infos, err := svc.UserChallenges(context.Background(), user)
	require.NoError(t, err)

	require.Len(t, infos, NumChallenges)
	for _, info := range infos {
		if info.ID == completedID {
			assert.True(t, info.Completed, "completion flag must follow the challenge id")
		} else {
			assert.False(t, info.Completed)
		}
	}
	assert.Equal(t, completedID, user.ChallengeStatuses[NumChallenges-1].ChallengeID)
}

func TestCompleteAwardsPoints(t *testing.T) {
	svc, users, _ := newChallengeFixture(t)
	user := seedChallengeUser(t, users, []models.ChallengeStatus{}, 0)

	infos, err := svc.UserChallenges(context.Background(), user)
	require.NoError(t, err)

	total, err := svc.Complete(context.Background(), user, infos[0].ID)
	require.NoError(t, err)

	assert.Equal(t, infos[0].PointReward, total)
	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, infos[0].PointReward, stored.Points)
	assert.True(t, stored.ChallengeStatuses[0].Completed)
}

func TestCompleteTwiceIsConflict(t *testing.T) {
	svc, users, _ := newChallengeFixture(t)
	user := seedChallengeUser(t, users, []models.ChallengeStatus{}, 0)

	infos, err := svc.UserChallenges(context.Background(), user)
	require.NoError(t, err)

	total, err := svc.Complete(context.Background(), user, infos[0].ID)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), user, infos[0].ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, total, stored.Points)
}

func TestCompleteUnknownChallenge(t *testing.T) {
	svc, users, _ := newChallengeFixture(t)
	user := seedChallengeUser(t, users, []models.ChallengeStatus{}, 0)

	_, err := svc.Complete(context.Background(), user, "64a0000000000000000000ff")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
