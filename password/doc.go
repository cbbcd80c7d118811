// Package password implements PBKDF2 password hashing and the versioned
// binary envelope that stores the result.
//
// # Envelope format
//
// Hashed passwords are serialized as a self-describing byte sequence:
//
//	{ 0x01, prf (uint32), iteration count (uint32), salt length (uint32), salt, derived key }
//
// All integers are big-endian. The persisted text form is the standard
// base64 encoding of these bytes, byte-compatible with credentials written
// by other implementations of the same format.
//
// The [Hasher] supports transparent parameter upgrades: when a stored
// envelope carries a lower iteration count than the configured default,
// [Hasher.Verify] reports [SuccessRehashNeeded] so the caller can re-hash
// on the next successful login.
//
// # Architecture boundaries
//
// This package owns hashing, verification, and envelope encoding only.
// Password policy (length, character classes) is enforced by the Engine.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive envelopes.
//   - Import any other goCred package.
//   - Leak why verification failed beyond the [VerificationResult] value.
package password
