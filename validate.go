package goCred

import (
	"errors"
	"net/mail"
	"strings"
)

// ValidationError reports field-level policy violations. It wraps the
// matching sentinel (ErrPasswordPolicy or ErrEmailInvalid) so errors.Is
// keeps working, and its detail is safe to show the caller.
type ValidationError struct {
	Field      string
	Violations []string
	sentinel   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.sentinel
}

const minPasswordLength = 8

// validatePassword enforces the password policy before any hashing work:
// at least 8 characters, one uppercase ASCII letter, one ASCII digit.
func validatePassword(password string) error {
	var violations []string

	if len(password) < minPasswordLength {
		violations = append(violations, "must be 8 characters or more")
	}
	if !strings.ContainsFunc(password, isUpper) {
		violations = append(violations, "must contain an upper case letter")
	}
	if !strings.ContainsFunc(password, isDigit) {
		violations = append(violations, "must contain a digit")
	}

	if len(violations) > 0 {
		return &ValidationError{Field: "password", Violations: violations, sentinel: ErrPasswordPolicy}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Violations: []string{"must not be empty"}, sentinel: ErrEmailInvalid}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Violations: []string{"must be a valid email address"}, sentinel: ErrEmailInvalid}
	}
	return nil
}

// normalizeEmail produces the case-insensitive lookup key for an email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUpper(c rune) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c rune) bool { return c >= '0' && c <= '9' }

// AsValidationError extracts the field-level detail from an error returned
// by Register, ResetPassword, or UpdateProfile, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
