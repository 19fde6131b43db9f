package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/store"
)

func newAuthFixture(t *testing.T) (*AuthService, *store.MemoryUsers) {
	t.Helper()
	users := store.NewMemoryUsers()
	return NewAuthService(users), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, 0, user.Points)
	assert.Nil(t, user.Enemy)
	assert.Empty(t, user.Inventory)
	assert.Nil(t, user.LastStreakDate)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	byEmail, err := svc.Login(context.Background(), "alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := svc.Login(context.Background(), "alice", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)
}

func TestLoginNormalizesEmailCase(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "alice", "Alice@Example.com", "supersecret")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ALICE@example.COM", "supersecret")
	require.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrongpassword")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))

	// Unknown identity is indistinguishable from a wrong password.
	_, unknownErr := svc.Login(context.Background(), "nobody", "supersecret")
	require.Error(t, unknownErr)
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(unknownErr))
	assert.Equal(t, err.Error(), unknownErr.Error())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice2", "alice@example.com", "supersecret")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "al", "alice@example.com", "supersecret"},
		{"username with symbols", "alice!", "alice@example.com", "supersecret"},
		{"bad email", "alice", "not-an-email", "supersecret"},
		{"short password", "alice", "alice@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "supersecret")
	require.NoError(t, err)
	id := user.ID.Hex()

	err = svc.ChangePassword(context.Background(), id, "supersecret", "newpassword", "mismatch")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	err = svc.ChangePassword(context.Background(), id, "wrongcurrent", "newpassword", "newpassword")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))

	err = svc.ChangePassword(context.Background(), id, "supersecret", "newpassword", "newpassword")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice@example.com", "supersecret")
	require.Error(t, err)
	_, err = svc.Login(context.Background(), "alice@example.com", "newpassword")
	require.NoError(t, err)
}

func TestSetUsername(t *testing.T) {
	svc, users := newAuthFixture(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	err = svc.SetUsername(context.Background(), user.ID.Hex(), "a!")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	require.NoError(t, svc.SetUsername(context.Background(), user.ID.Hex(), "alicia"))

	stored, err := users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "alicia", stored.Username)
}

func TestDeleteAccount(t *testing.T) {
	svc, users := newAuthFixture(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	err = svc.DeleteAccount(context.Background(), user.ID.Hex(), "wrongpassword")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))

	require.NoError(t, svc.DeleteAccount(context.Background(), user.ID.Hex(), "supersecret"))

	_, err = users.FindByID(context.Background(), user.ID.Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
