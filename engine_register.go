package goCred

import (
	"context"
	"errors"
)

// Register creates a new account. The password is validated against the
// policy, hashed into a credential envelope, and handed to the store with
// the profile fields. An empty Role gets the configured default. Unlike
// login, a taken email is reported as ErrEmailInUse: enumeration through
// registration is accepted.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if e == nil || e.store == nil || e.hasher == nil {
		return nil, ErrEngineNotReady
	}

	email := normalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", "", err, nil)
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", email, err, nil)
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = e.config.Account.DefaultRole
	}
	if !e.roleAllowed(role) {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", email, ErrRoleInvalid, func() map[string]string {
			return map[string]string{
				"role": role,
			}
		})
		return nil, ErrRoleInvalid
	}

	envelope, err := e.hasher.Hash(req.Password)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", email, err, nil)
		return nil, err
	}
	req.Password = ""

	user, err := e.store.CreateUser(ctx, CreateUserInput{
		Email:              email,
		CredentialEnvelope: envelope,
		Role:               role,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, auditEventRegisterDuplicate, false, "", email, ErrEmailInUse, nil)
			return nil, ErrEmailInUse
		}
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", email, ErrStoreUnavailable, nil)
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, user.UserID, user.Email, nil, func() map[string]string {
		return map[string]string{
			"role": user.Role,
		}
	})

	return &RegisterResult{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
