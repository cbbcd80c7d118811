package goCred

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventRegisterSuccess      = "register_success"
	auditEventRegisterDuplicate    = "register_duplicate"
	auditEventRegisterFailure      = "register_failure"
	auditEventLoginSuccess         = "login_success"
	auditEventLoginFailure         = "login_failure"
	auditEventCredentialRehash     = "credential_rehash"
	auditEventCredentialDecode     = "credential_decode_error"
	auditEventResetRequest         = "password_reset_request"
	auditEventResetConfirm         = "password_reset_confirm"
	auditEventResetReplay          = "password_reset_replay"
	auditEventProfileUpdate        = "profile_update"
	auditEventProfileUpdateFailure = "profile_update_failure"
)

// AuditErrorCode is the stable machine-readable failure label carried by
// audit events. Codes exist for operators; flow responses stay uniform.
type AuditErrorCode string

const (
	auditErrUnauthorized   AuditErrorCode = "unauthorized"
	auditErrDuplicate      AuditErrorCode = "duplicate"
	auditErrUserNotFound   AuditErrorCode = "user_not_found"
	auditErrPasswordPolicy AuditErrorCode = "password_policy"
	auditErrEmailInvalid   AuditErrorCode = "email_invalid"
	auditErrRoleInvalid    AuditErrorCode = "role_invalid"
	auditErrEntropy        AuditErrorCode = "entropy_unavailable"
	auditErrUnavailable    AuditErrorCode = "backend_unavailable"
	auditErrInternal       AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	email string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Email:     email,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return auditErrUnauthorized
	case errors.Is(err, ErrEmailInUse), errors.Is(err, ErrDuplicateEmail):
		return auditErrDuplicate
	case errors.Is(err, ErrUserNotFound):
		return auditErrUserNotFound
	case errors.Is(err, ErrPasswordPolicy):
		return auditErrPasswordPolicy
	case errors.Is(err, ErrEmailInvalid):
		return auditErrEmailInvalid
	case errors.Is(err, ErrRoleInvalid):
		return auditErrRoleInvalid
	case errors.Is(err, ErrEntropyUnavailable):
		return auditErrEntropy
	case errors.Is(err, ErrStoreUnavailable):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
