package utils

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail permits the bootstrap "admin" identifier alongside regular
// addresses; it exists before any real account does.
func ValidateEmail(email string) error {
	if email == "admin" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	return nil
}
