package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/questforge/questforge-backend/internal/database"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions.
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping.
	UserSessionKeyPrefix = "user_session:"
)

// CreateSession issues a new opaque session token bound to the user id
// and stores it in Redis with a 7-day TTL. An existing session for the
// same user is invalidated first so re-login rotates the token.
func CreateSession(userID string) (string, error) {
	InvalidateUserSessions(userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	ctx := context.Background()
	if err := database.RedisClient.Set(ctx, SessionKeyPrefix+token, userID, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := database.RedisClient.Set(ctx, UserSessionKeyPrefix+userID, token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateSession resolves a session token to a user id. The second
// return value is false when the token is missing or expired.
func ValidateSession(token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	userID, err := database.RedisClient.Get(context.Background(), SessionKeyPrefix+token).Result()
	if err != nil || userID == "" {
		return "", false, nil
	}
	return userID, true, nil
}

// RefreshSession extends the session TTL by another 7 days from now.
func RefreshSession(token string) error {
	if token == "" {
		return fmt.Errorf("session token is empty")
	}

	ctx := context.Background()
	userID, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return err
	}

	if err := database.RedisClient.Expire(ctx, SessionKeyPrefix+token, SessionDuration).Err(); err != nil {
		return err
	}
	return database.RedisClient.Expire(ctx, UserSessionKeyPrefix+userID, SessionDuration).Err()
}

// InvalidateSession removes a session token and its user mapping.
func InvalidateSession(token string) error {
	if token == "" {
		return nil
	}

	ctx := context.Background()
	userID, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err == nil && userID != "" {
		database.RedisClient.Del(ctx, UserSessionKeyPrefix+userID)
	}
	return database.RedisClient.Del(ctx, SessionKeyPrefix+token).Err()
}

// InvalidateUserSessions drops the user's current session, if any.
// Used on re-login, password change and account deletion.
func InvalidateUserSessions(userID string) error {
	ctx := context.Background()
	token, err := database.RedisClient.Get(ctx, UserSessionKeyPrefix+userID).Result()
	if err == nil && token != "" {
		database.RedisClient.Del(ctx, SessionKeyPrefix+token)
	}
	return database.RedisClient.Del(ctx, UserSessionKeyPrefix+userID).Err()
}
