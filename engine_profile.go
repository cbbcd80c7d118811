package goCred

import (
	"context"
	"errors"
)

// UpdateProfile reassigns a user's email, role, and name fields in one
// store write. The role must come from the configured set and the email
// must not belong to another account.
func (e *Engine) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserRecord, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}
	if req.UserID == "" {
		return nil, ErrUserNotFound
	}

	email := normalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		e.emitAudit(ctx, auditEventProfileUpdateFailure, false, req.UserID, email, err, nil)
		return nil, err
	}
	if !e.roleAllowed(req.Role) {
		e.emitAudit(ctx, auditEventProfileUpdateFailure, false, req.UserID, email, ErrRoleInvalid, func() map[string]string {
			return map[string]string{
				"role": req.Role,
			}
		})
		return nil, ErrRoleInvalid
	}

	user, err := e.store.UpdateProfile(ctx, req.UserID, ProfileInput{
		Email:     email,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			e.emitAudit(ctx, auditEventProfileUpdateFailure, false, req.UserID, email, ErrEmailInUse, nil)
			return nil, ErrEmailInUse
		case errors.Is(err, ErrUserNotFound):
			e.emitAudit(ctx, auditEventProfileUpdateFailure, false, req.UserID, email, ErrUserNotFound, nil)
			return nil, ErrUserNotFound
		default:
			e.emitAudit(ctx, auditEventProfileUpdateFailure, false, req.UserID, email, ErrStoreUnavailable, nil)
			return nil, errors.Join(ErrStoreUnavailable, err)
		}
	}

	e.metricInc(MetricProfileUpdate)
	e.emitAudit(ctx, auditEventProfileUpdate, true, user.UserID, user.Email, nil, func() map[string]string {
		return map[string]string{
			"role": user.Role,
		}
	})

	return &user, nil
}
