// internal/forms/validate.go
package forms

import (
	"regexp"
	"strings"
)

// Basic local@domain.tld shape; the backend stays the real authority.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 8

func validateFullName(s string) string {
	if strings.TrimSpace(s) == "" {
		return "full name is required"
	}
	return ""
}

func validateEmail(s string) string {
	if strings.TrimSpace(s) == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(s) {
		return "email must be a valid address"
	}
	return ""
}

func validatePassword(s string) string {
	if s == "" {
		return "password is required"
	}
	if len(s) < minPasswordLen {
		return "password must be at least 8 characters"
	}
	return ""
}

// ValidateRegistrationInput applies the registration field rules to raw
// input and returns one message per failing field. The devserver shares
// it so both sides of the dev loop enforce the same contract.
func ValidateRegistrationInput(fullName, email, password string) []string {
	var msgs []string
	for _, m := range []string{
		validateFullName(fullName),
		validateEmail(email),
		validatePassword(password),
	} {
		if m != "" {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

func validateConfirm(password, confirm string) string {
	if confirm == "" {
		return "please confirm the password"
	}
	if confirm != password {
		return "passwords do not match"
	}
	return ""
}
