// Package validation contains input validation rules for user-supplied fields.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.@+-]+$`)

// ValidateUsername checks the username against length and character rules.
// Only ASCII letters, digits and @.+-_ are allowed.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	if len(username) > 150 {
		return errors.New("username must be at most 150 characters")
	}
	if !usernameRe.MatchString(username) {
		return errors.New("username may only contain letters, digits and @.+-_ characters")
	}
	return nil
}

// ValidateEmail performs a light sanity check on the address shape.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New("invalid email address")
	}
	if strings.ContainsAny(email, " \t\n") {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword enforces minimal password strength.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return errors.New("password must be at most 128 characters")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain both letters and digits")
	}
	return nil
}

// ValidateDescription bounds free-text profile descriptions.
func ValidateDescription(description string) error {
	if len(description) > 200 {
		return errors.New("description must be at most 200 characters")
	}
	return nil
}
