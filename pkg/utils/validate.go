package utils

import (
	"regexp"
	"strings"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxPasswordLength = 50
	MaxEmailLength    = 50
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidationError carries the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateUsername enforces the username rules: alphanumeric, 3-30 chars.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return &ValidationError{Field: "username", Message: "Username must be at least 3 characters"}
	}
	if len(username) > MaxUsernameLength {
		return &ValidationError{Field: "username", Message: "Username must be at most 30 characters"}
	}
	if !usernameRegex.MatchString(username) {
		return &ValidationError{Field: "username", Message: "Username can only contain letters and numbers"}
	}
	return nil
}

// ValidateEmail enforces the email rules: well-formed, at most 50 chars.
func ValidateEmail(email string) error {
	if email == "" || len(email) > MaxEmailLength {
		return &ValidationError{Field: "email", Message: "Email must be a valid address of at most 50 characters"}
	}
	if !emailRegex.MatchString(email) {
		return &ValidationError{Field: "email", Message: "Email must be a valid address"}
	}
	return nil
}

// ValidatePassword enforces the password rules: 8-50 chars.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	if len(password) > MaxPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at most 50 characters"}
	}
	return nil
}

// IsUsername reports whether s is a valid username.
func IsUsername(s string) bool { return ValidateUsername(s) == nil }

// IsEmail reports whether s is a valid email.
func IsEmail(s string) bool { return ValidateEmail(s) == nil }

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
