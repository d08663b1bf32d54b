package service

import (
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	passwordPattern = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,16}$`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	specialPattern  = regexp.MustCompile(`[@$!%*?&]`)
)

func validateName(name string) error {
	if len(name) < 20 || len(name) > 60 {
		return &ValidationError{Field: "name", Reason: "must be between 20 and 60 characters"}
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "invalid email format"}
	}
	return nil
}

func validateAddress(address string) error {
	if address == "" {
		return &ValidationError{Field: "address", Reason: "is required"}
	}
	if len(address) > 400 {
		return &ValidationError{Field: "address", Reason: "can be a maximum of 400 characters"}
	}
	return nil
}

func validatePassword(password string) error {
	if !passwordPattern.MatchString(password) || !upperPattern.MatchString(password) || !specialPattern.MatchString(password) {
		return &ValidationError{Field: "password", Reason: "must be 8-16 chars, include one uppercase and one special character"}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
