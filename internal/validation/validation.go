// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 4 {
		return fmt.Errorf("username must be at least 4 characters long")
	}

	if len(username) > 80 {
		return fmt.Errorf("username must not exceed 80 characters")
	}

	// Only allow alphanumeric, underscores and hyphens
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	return nil
}

// ValidateEmail checks basic email format. The only structural requirement is
// an @ sign; anything stricter rejects addresses the platform historically
// accepted.
func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("please enter a valid email address")
	}

	if len(email) > 120 {
		return fmt.Errorf("email must not exceed 120 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets the minimum requirements
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}
