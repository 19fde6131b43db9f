package services

import (
	"context"
	"errors"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/store"
	"github.com/questforge/questforge-backend/pkg/utils"
)

// AuthService owns credential verification and account lifecycle.
// Session issuance is separate (session.go); this service only resolves
// credentials to a user id.
type AuthService struct {
	users store.UserRepository
}

func NewAuthService(users store.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register validates the credentials, rejects duplicate emails and
// creates a fresh user document with zeroed game state.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	email = utils.NormalizeEmail(email)
	if err := utils.ValidateEmail(email); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Conflict("Email already in use.")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Internal("failed to check email", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Username:            username,
		Email:               email,
		PasswordHash:        hash,
		Points:              0,
		Enemy:               nil,
		EnemyHealthModifier: 0,
		Inventory:           []string{},
		ChallengeStatuses:   []models.ChallengeStatus{},
		LastStreakDate:      nil,
	}
	if _, err := s.users.Insert(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to create user", err)
	}
	return user, nil
}

// Login resolves the identity by email first, then by username, and
// verifies the password. The same Unauthorized error is returned for an
// unknown identity and a wrong password.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*models.User, error) {
	var user *models.User
	var err error

	if utils.IsEmail(usernameOrEmail) {
		user, err = s.users.FindByEmail(ctx, utils.NormalizeEmail(usernameOrEmail))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Internal("failed to look up user", err)
		}
	}
	if user == nil {
		user, err = s.users.FindByUsername(ctx, usernameOrEmail)
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthenticated("Incorrect login data.")
		}
		if err != nil {
			return nil, apperrors.Internal("failed to look up user", err)
		}
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		return nil, apperrors.Unauthenticated("Incorrect login data.")
	}
	return user, nil
}

// ChangePassword re-hashes and stores the new password after verifying
// the confirmation and the current password.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirm string) error {
	if newPassword != confirm {
		return apperrors.Validation("New password and confirmation password do not match.")
	}
	if err := utils.ValidatePassword(newPassword); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound("User not found.")
	}
	if err != nil {
		return apperrors.Internal("failed to load user", err)
	}

	valid, err := utils.VerifyPassword(oldPassword, user.PasswordHash)
	if err != nil || !valid {
		return apperrors.Unauthenticated("Current password is incorrect.")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}
	if err := s.users.Update(ctx, userID, store.UserPatch{PasswordHash: &hash}); err != nil {
		return apperrors.Internal("failed to update password", err)
	}
	return nil
}

// SetUsername updates the user's display name after validation.
func (s *AuthService) SetUsername(ctx context.Context, userID, username string) error {
	if err := utils.ValidateUsername(username); err != nil {
		return apperrors.Validation(err.Error())
	}
	err := s.users.Update(ctx, userID, store.UserPatch{Username: &username})
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound("User not found.")
	}
	if err != nil {
		return apperrors.Internal("failed to update username", err)
	}
	return nil
}

// DeleteAccount removes the user document after verifying the password.
func (s *AuthService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound("User not found.")
	}
	if err != nil {
		return apperrors.Internal("failed to load user", err)
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		return apperrors.Unauthenticated("Password is incorrect.")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return apperrors.Internal("failed to delete user", err)
	}
	return nil
}
