// Package goCred is an embeddable credential authority: password-based
// account flows built on PBKDF2 envelopes, signed bearer tokens, and
// single-use reset tokens, with account storage delegated to a
// caller-supplied [UserStore].
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goCred is the public surface. It exposes [Engine], [Builder], [Config],
// the [UserStore] contract, and value types (LoginResult, MetricsSnapshot,
// etc.). Envelope encoding lives in the password sub-package, token
// signing in jwt, and random token plumbing under internal/.
//
// # What this package must NOT do
//
//   - See or store plaintext passwords beyond the duration of a call.
//   - Reveal through Login or ResetPassword errors whether an account
//     exists; those paths fail uniformly with ErrUnauthorized.
//   - Dispatch email or render reset links. ForgotPassword returns the
//     reset code to the trusted caller and stops there.
//
// # Credential compatibility
//
// Stored envelopes are self-describing: each records its PRF, iteration
// count, and salt. Raising the configured iteration count upgrades
// existing credentials transparently on their next successful login.
package goCred
