package goCred

import "errors"

var (
	// ErrUnauthorized is returned uniformly for failed logins and failed
	// password resets. The message never discloses which precondition
	// failed, so callers cannot enumerate accounts or probe reset tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEmailInUse is returned by Register when the email already has an
	// account. Enumeration at registration time is accepted.
	ErrEmailInUse = errors.New("email already in use")
	// ErrEmailInvalid is returned when an email fails syntax validation.
	ErrEmailInvalid = errors.New("invalid email address")
	// ErrPasswordPolicy is returned when a password violates the policy
	// (minimum length, uppercase letter, digit). Safe to show the caller;
	// field-level detail rides in the wrapping *ValidationError.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrRoleInvalid is returned when a role is not in the configured set.
	ErrRoleInvalid = errors.New("invalid role")
	// ErrUserNotFound is returned by UserStore lookups and surfaced only
	// from operations where disclosing absence is acceptable.
	ErrUserNotFound = errors.New("user not found")
	// ErrEngineNotReady is returned when the Engine is missing a dependency.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrEntropyUnavailable is returned when the operating system entropy
	// source fails. The operation aborts; there is no weaker fallback.
	ErrEntropyUnavailable = errors.New("secure entropy source unavailable")
	// ErrStoreUnavailable is returned when the user store fails for any
	// reason other than a missing record or a duplicate email.
	ErrStoreUnavailable = errors.New("user store unavailable")

	// ErrDuplicateEmail is the sentinel UserStore implementations return
	// from CreateUser and UpdateProfile when the email index already holds
	// another user. The Engine maps it to ErrEmailInUse.
	ErrDuplicateEmail = errors.New("store: duplicate email")
	// ErrResetConflict is the sentinel UserStore implementations return
	// from CompleteReset when the stored token no longer matches, meaning
	// the token was consumed or replaced concurrently.
	ErrResetConflict = errors.New("store: reset token conflict")
)
