package password

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"hash"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 cost applied to new envelopes.
	DefaultIterations uint32 = 100_000
	// DefaultSaltLength is 128 bits.
	DefaultSaltLength uint32 = 16
	// DefaultKeyLength is 256 bits.
	DefaultKeyLength uint32 = 32

	minIterations uint32 = 1_000
)

// VerificationResult reports the outcome of a password check.
type VerificationResult int

const (
	// Failed means the password does not match the stored envelope, or the
	// envelope could not be decoded. Callers must not distinguish the two.
	Failed VerificationResult = iota
	// Success means the password matches and the stored parameters meet
	// current policy.
	Success
	// SuccessRehashNeeded means the password matches but the stored
	// envelope was derived with a lower iteration count than currently
	// configured; the caller should re-hash and persist while the
	// plaintext is in hand.
	SuccessRehashNeeded
)

// Config holds the derivation parameters for new envelopes.
type Config struct {
	Prf        PrfID
	Iterations uint32
	SaltLength uint32
	KeyLength  uint32
}

// Hasher derives and verifies credential envelopes. A Hasher is immutable
// after construction and safe for concurrent use.
type Hasher struct {
	config Config
}

// NewHasher validates cfg and returns a Hasher. Zero-valued fields take
// the package defaults.
func NewHasher(cfg Config) (*Hasher, error) {
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.SaltLength == 0 {
		cfg.SaltLength = DefaultSaltLength
	}
	if cfg.KeyLength == 0 {
		cfg.KeyLength = DefaultKeyLength
	}

	if _, ok := prfHash(cfg.Prf); !ok {
		return nil, errors.New("unsupported prf")
	}
	if cfg.Iterations < minIterations {
		return nil, errors.New("iteration count below minimum")
	}
	if cfg.SaltLength < minSaltLength {
		return nil, errors.New("salt length below 16 bytes")
	}
	if cfg.KeyLength < minKeyLength {
		return nil, errors.New("key length below 16 bytes")
	}

	return &Hasher{config: cfg}, nil
}

// Iterations returns the configured cost factor.
func (h *Hasher) Iterations() uint32 {
	return h.config.Iterations
}

// Hash derives a fresh envelope from password. Every call draws a new salt
// from crypto/rand, so two hashes of the same password differ.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}

	salt := make([]byte, h.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	fn, _ := prfHash(h.config.Prf)
	key := pbkdf2.Key([]byte(password), salt, int(h.config.Iterations), int(h.config.KeyLength), fn)

	return EncodeText(&Envelope{
		Prf:        h.config.Prf,
		Iterations: h.config.Iterations,
		Salt:       salt,
		Key:        key,
	}), nil
}

// Verify checks password against the stored envelope text. The returned
// error is diagnostic only (a *DecodeError on corrupt input, for operator
// logging); the VerificationResult is authoritative and already accounts
// for every failure mode. The key comparison is constant time.
func (h *Hasher) Verify(password, encoded string) (VerificationResult, error) {
	if encoded == "" || password == "" {
		return Failed, nil
	}

	env, err := DecodeText(encoded)
	if err != nil {
		return Failed, err
	}

	fn, ok := prfHash(env.Prf)
	if !ok {
		return Failed, &DecodeError{Reason: "unknown prf code"}
	}
	if env.Iterations == 0 {
		return Failed, &DecodeError{Reason: "zero iteration count"}
	}

	candidate := pbkdf2.Key([]byte(password), env.Salt, int(env.Iterations), len(env.Key), fn)
	if subtle.ConstantTimeCompare(candidate, env.Key) != 1 {
		return Failed, nil
	}

	if env.Iterations < h.config.Iterations {
		return SuccessRehashNeeded, nil
	}
	return Success, nil
}

func prfHash(prf PrfID) (func() hash.Hash, bool) {
	switch prf {
	case PrfHMACSHA1:
		return sha1.New, true
	case PrfHMACSHA256:
		return sha256.New, true
	case PrfHMACSHA512:
		return sha512.New, true
	default:
		return nil, false
	}
}
