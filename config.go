package goCred

import (
	"errors"
	"time"

	"github.com/MrEthical07/goCred/internal"
	"github.com/MrEthical07/goCred/jwt"
	"github.com/MrEthical07/goCred/password"
)

// Config is the single configuration object for the Engine. It is built
// once at process start, validated in [Builder.Build], and never mutated
// afterwards — there is no ambient or static configuration state.
type Config struct {
	Password PasswordConfig
	Token    TokenConfig
	Reset    ResetConfig
	Account  AccountConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// PasswordConfig tunes the PBKDF2 key derivation for new envelopes.
// Stored envelopes carry their own parameters, so raising Iterations here
// upgrades credentials transparently on the next successful login.
type PasswordConfig struct {
	Iterations uint32
	SaltLength uint32
	KeyLength  uint32
}

// TokenConfig holds bearer token policy and signing key material.
type TokenConfig struct {
	TTL           time.Duration
	SigningMethod jwt.SigningMethod
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
}

// ResetConfig tunes reset token issuance. TokenTTL of zero means tokens
// never expire on their own; they still die on use or on reissue.
type ResetConfig struct {
	TokenSize int
	TokenTTL  time.Duration
}

// AccountConfig holds registration policy.
type AccountConfig struct {
	DefaultRole string
}

// AuditConfig controls the buffered audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Password: PasswordConfig{
			Iterations: password.DefaultIterations,
			SaltLength: password.DefaultSaltLength,
			KeyLength:  password.DefaultKeyLength,
		},
		Token: TokenConfig{
			TTL:           jwt.DefaultTTL,
			SigningMethod: jwt.MethodEd25519,
		},
		Reset: ResetConfig{
			TokenSize: internal.DefaultResetTokenSize,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.PrivateKey = append([]byte(nil), cfg.Token.PrivateKey...)
	out.Token.PublicKey = append([]byte(nil), cfg.Token.PublicKey...)
	return out
}

// Validate checks cross-field consistency. Field floors for hashing and
// signing are enforced by the password and jwt constructors.
func (c Config) Validate() error {
	if c.Reset.TokenSize < 0 {
		return errors.New("reset token size must be positive")
	}
	if c.Reset.TokenTTL < 0 {
		return errors.New("reset token TTL must not be negative")
	}
	if c.Token.TTL < 0 {
		return errors.New("token TTL must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}
	return nil
}
