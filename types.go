package goCred

import (
	"context"
	"time"
)

// UserRecord is the account record exchanged with a [UserStore]. The
// Engine owns the CredentialEnvelope and ResetToken fields; everything
// else is profile data it merely passes through.
type UserRecord struct {
	UserID             string
	Email              string
	CredentialEnvelope string
	ResetToken         string
	ResetTokenIssuedAt time.Time
	Role               string
	FirstName          string
	LastName           string
}

// CreateUserInput carries the fields for a new account. The envelope is
// already hashed; stores never see plaintext passwords.
type CreateUserInput struct {
	Email              string
	CredentialEnvelope string
	Role               string
	FirstName          string
	LastName           string
}

// ProfileInput carries the mutable profile fields for UpdateProfile.
type ProfileInput struct {
	Email     string
	Role      string
	FirstName string
	LastName  string
}

// UserStore is the interface callers implement to integrate goCred with
// their user database. Email addressing is case-insensitive: stores must
// treat two emails differing only in case as the same key, both for
// lookups and for the uniqueness checks in CreateUser and UpdateProfile.
//
// The read-modify-write sequences behind CreateUser, CompleteReset, and
// UpdateProfile must be serialized per affected record (a transaction or
// optimistic-concurrency retry) so concurrent requests cannot produce
// lost updates. Writes are all-or-nothing: a cancelled request must never
// leave a partially written envelope or a cleared-but-unreplaced token.
type UserStore interface {
	// GetUserByEmail returns ErrUserNotFound when no account matches.
	GetUserByEmail(ctx context.Context, email string) (UserRecord, error)
	// GetUserByID returns ErrUserNotFound when no account matches.
	GetUserByID(ctx context.Context, userID string) (UserRecord, error)
	// CreateUser returns ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
	// UpdateCredential replaces the stored envelope wholesale.
	UpdateCredential(ctx context.Context, userID, envelope string) error
	// SetResetToken overwrites the user's reset token (invalidating any
	// prior one) and records the issuance instant.
	SetResetToken(ctx context.Context, userID, token string, issuedAt time.Time) error
	// CompleteReset atomically replaces the envelope and clears the reset
	// token, but only while the stored token still equals expectToken.
	// Returns ErrResetConflict when it no longer does.
	CompleteReset(ctx context.Context, userID, expectToken, envelope string) error
	// UpdateProfile reassigns profile fields and role in one write.
	// Returns ErrDuplicateEmail when the new email belongs to another user.
	UpdateProfile(ctx context.Context, userID string, input ProfileInput) (UserRecord, error)
}

// RegisterRequest creates a new account. Role is optional; when empty the
// configured default role is assigned.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// RegisterResult reports the created account.
type RegisterResult struct {
	UserID string
	Email  string
	Role   string
}

// LoginResult carries the issued bearer token. CredentialUpgraded is true
// when the stored envelope was transparently re-hashed with current
// parameters during this login.
type LoginResult struct {
	AccessToken        string
	ExpiresAt          time.Time
	UserID             string
	Email              string
	Role               string
	CredentialUpgraded bool
}

// ForgotPasswordResult is returned to the trusted orchestration layer
// only. When the email had no account both fields are empty; either way
// the end caller must be told the request succeeded. ResetCode is the
// URL-safe text to embed in the reset link and dispatch out of band —
// it is never persisted in this form.
type ForgotPasswordResult struct {
	UserID    string
	ResetCode string
}

// ResetPasswordRequest consumes a reset code to set a new password.
type ResetPasswordRequest struct {
	UserID    string
	ResetCode string
	Password  string
}

// UpdateProfileRequest reassigns profile fields and the user's single role.
type UpdateProfileRequest struct {
	UserID    string
	Email     string
	Role      string
	FirstName string
	LastName  string
}
