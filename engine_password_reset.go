package goCred

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"math/big"
	"time"

	"github.com/MrEthical07/goCred/internal"
)

// ForgotPassword starts the reset flow. For a known email it mints a
// fresh random token, stores it (replacing any earlier token), and hands
// back the URL-safe reset code for out-of-band delivery. For an unknown
// email it returns an empty result with a nil error: the caller must
// present both outcomes identically, and this method burns comparable
// work on the miss path so response timing does not betray the
// difference either.
func (e *Engine) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	e.metricInc(MetricResetRequest)

	email = normalizeEmail(email)

	user, err := e.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricResetRequestUnknownEmail)
			e.burnResetWork()
			e.emitAudit(ctx, auditEventResetRequest, false, "", email, ErrUserNotFound, func() map[string]string {
				return map[string]string{
					"reason": "unknown_email",
				}
			})
			return &ForgotPasswordResult{}, nil
		}
		e.emitAudit(ctx, auditEventResetRequest, false, "", email, ErrStoreUnavailable, nil)
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	raw, err := internal.NewToken(e.config.Reset.TokenSize)
	if err != nil {
		e.emitAudit(ctx, auditEventResetRequest, false, user.UserID, user.Email, ErrEntropyUnavailable, nil)
		return nil, errors.Join(ErrEntropyUnavailable, err)
	}

	stored := base64.StdEncoding.EncodeToString(raw)
	if err := e.store.SetResetToken(ctx, user.UserID, stored, time.Now().UTC()); err != nil {
		e.emitAudit(ctx, auditEventResetRequest, false, user.UserID, user.Email, ErrStoreUnavailable, nil)
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	e.emitAudit(ctx, auditEventResetRequest, true, user.UserID, user.Email, nil, nil)

	return &ForgotPasswordResult{
		UserID:    user.UserID,
		ResetCode: internal.EncodeToken(raw),
	}, nil
}

// ResetPassword consumes a reset code and installs a new password. The
// new password is policy-checked up front and those violations are
// disclosed; everything after that point fails with a uniform
// ErrUnauthorized, whether the user is unknown, the token is absent,
// expired, or wrong, or another request consumed it first.
func (e *Engine) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if e == nil || e.store == nil || e.hasher == nil {
		return ErrEngineNotReady
	}

	if err := validatePassword(req.Password); err != nil {
		e.metricInc(MetricResetFailure)
		e.emitAudit(ctx, auditEventResetConfirm, false, req.UserID, "", err, nil)
		return err
	}
	if req.UserID == "" || req.ResetCode == "" {
		e.metricInc(MetricResetFailure)
		e.emitAudit(ctx, auditEventResetConfirm, false, req.UserID, "", ErrUnauthorized, func() map[string]string {
			return map[string]string{
				"reason": "empty_input",
			}
		})
		return ErrUnauthorized
	}

	user, err := e.store.GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricResetFailure)
			e.emitAudit(ctx, auditEventResetConfirm, false, req.UserID, "", ErrUnauthorized, func() map[string]string {
				return map[string]string{
					"reason": "user_not_found",
				}
			})
			return ErrUnauthorized
		}
		e.emitAudit(ctx, auditEventResetConfirm, false, req.UserID, "", ErrStoreUnavailable, nil)
		return errors.Join(ErrStoreUnavailable, err)
	}

	if user.ResetToken == "" {
		e.metricInc(MetricResetFailure)
		e.emitAudit(ctx, auditEventResetConfirm, false, user.UserID, user.Email, ErrUnauthorized, func() map[string]string {
			return map[string]string{
				"reason": "no_pending_reset",
			}
		})
		return ErrUnauthorized
	}
	if ttl := e.config.Reset.TokenTTL; ttl > 0 && time.Since(user.ResetTokenIssuedAt) > ttl {
		e.metricInc(MetricResetFailure)
		e.emitAudit(ctx, auditEventResetConfirm, false, user.UserID, user.Email, ErrUnauthorized, func() map[string]string {
			return map[string]string{
				"reason": "token_expired",
			}
		})
		return ErrUnauthorized
	}

	provided, err := internal.DecodeToken(req.ResetCode)
	if err != nil {
		e.metricInc(MetricResetFailure)
		e.emitAudit(ctx, auditEventResetConfirm, false, user.UserID, user.Email, ErrUnauthorized, func() map[string]string {
			return map[string]string{
				"reason": "malformed_code",
			}
		})
		return ErrUnauthorized
	}
	stored, err := base64.StdEncoding.DecodeString(user.ResetToken)
	if err != nil || !internal.TokensEqual(provided, stored) {
		e.metricInc(MetricResetFailure)
		e.emitAudit(ctx, auditEventResetConfirm, false, user.UserID, user.Email, ErrUnauthorized, func() map[string]string {
			return map[string]string{
				"reason": "token_mismatch",
			}
		})
		return ErrUnauthorized
	}

	envelope, err := e.hasher.Hash(req.Password)
	if err != nil {
		e.metricInc(MetricResetFailure)
		e.emitAudit(ctx, auditEventResetConfirm, false, user.UserID, user.Email, err, nil)
		return err
	}
	req.Password = ""

	if err := e.store.CompleteReset(ctx, user.UserID, user.ResetToken, envelope); err != nil {
		if errors.Is(err, ErrResetConflict) {
			e.metricInc(MetricResetReplay)
			e.metricInc(MetricResetFailure)
			e.emitAudit(ctx, auditEventResetReplay, false, user.UserID, user.Email, ErrUnauthorized, nil)
			return ErrUnauthorized
		}
		e.metricInc(MetricResetFailure)
		e.emitAudit(ctx, auditEventResetConfirm, false, user.UserID, user.Email, ErrStoreUnavailable, nil)
		return errors.Join(ErrStoreUnavailable, err)
	}

	e.metricInc(MetricResetSuccess)
	e.emitAudit(ctx, auditEventResetConfirm, true, user.UserID, user.Email, nil, nil)

	return nil
}

// burnResetWork performs token generation for an account that does not
// exist and adds a small random delay, bringing the miss path's timing
// in line with the hit path's store round trip.
func (e *Engine) burnResetWork() {
	if raw, err := internal.NewToken(e.config.Reset.TokenSize); err == nil {
		_ = internal.EncodeToken(raw)
	}

	jitter, err := rand.Int(rand.Reader, big.NewInt(20))
	if err != nil {
		jitter = big.NewInt(10)
	}
	time.Sleep(time.Duration(20+jitter.Int64()) * time.Millisecond)
}
