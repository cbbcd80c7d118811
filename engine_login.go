package goCred

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goCred/password"
)

// Login verifies the password against the stored credential envelope and,
// on success, issues a signed bearer token. Every failure path returns
// ErrUnauthorized so callers cannot distinguish an unknown email from a
// wrong password.
//
// When the stored envelope was derived with fewer iterations than the
// current configuration, the credential is transparently re-hashed and
// persisted. Persisting the upgrade is best-effort: a store failure there
// is audited but never blocks the successful login.
func (e *Engine) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	if e == nil || e.store == nil || e.hasher == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}

	email = normalizeEmail(email)
	if email == "" || pass == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", email, ErrUnauthorized, func() map[string]string {
			return map[string]string{
				"reason": "empty_input",
			}
		})
		return nil, ErrUnauthorized
	}

	user, err := e.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLoginFailure, false, "", email, ErrUnauthorized, func() map[string]string {
				return map[string]string{
					"reason": "user_not_found",
				}
			})
			return nil, ErrUnauthorized
		}
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", email, ErrStoreUnavailable, nil)
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	start := time.Now()
	result, verr := e.hasher.Verify(pass, user.CredentialEnvelope)
	if e.metrics != nil {
		e.metrics.Observe(MetricDeriveLatency, time.Since(start))
	}
	if verr != nil {
		// The envelope failed to decode. The login is rejected like any
		// other mismatch, but the corruption itself is worth surfacing.
		e.metricInc(MetricCredentialDecodeError)
		e.emitAudit(ctx, auditEventCredentialDecode, false, user.UserID, user.Email, verr, nil)
	}
	if result == password.Failed {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.UserID, user.Email, ErrUnauthorized, func() map[string]string {
			return map[string]string{
				"reason": "credential_mismatch",
			}
		})
		return nil, ErrUnauthorized
	}

	upgraded := false
	if result == password.SuccessRehashNeeded {
		if envelope, herr := e.hasher.Hash(pass); herr == nil {
			if uerr := e.store.UpdateCredential(ctx, user.UserID, envelope); uerr == nil {
				upgraded = true
				e.metricInc(MetricCredentialRehash)
				e.emitAudit(ctx, auditEventCredentialRehash, true, user.UserID, user.Email, nil, nil)
			} else {
				e.emitAudit(ctx, auditEventCredentialRehash, false, user.UserID, user.Email, ErrStoreUnavailable, nil)
			}
		} else {
			e.emitAudit(ctx, auditEventCredentialRehash, false, user.UserID, user.Email, herr, nil)
		}
	}
	pass = ""

	token, expiresAt, err := e.tokens.Create(user.UserID, user.Email, user.Role)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.UserID, user.Email, err, func() map[string]string {
			return map[string]string{
				"reason": "token_issue_failed",
			}
		})
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, user.UserID, user.Email, nil, nil)

	return &LoginResult{
		AccessToken:        token,
		ExpiresAt:          expiresAt,
		UserID:             user.UserID,
		Email:              user.Email,
		Role:               user.Role,
		CredentialUpgraded: upgraded,
	}, nil
}
