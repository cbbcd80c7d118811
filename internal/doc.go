// Package internal contains helper utilities that are intentionally private
// to goCred, chiefly the secure random token generator behind reset codes.
//
// # What this package must NOT do
//
//   - Export types that appear in the public goCred API.
//   - Be imported by any package outside the goCred module.
//   - Fall back to a non-cryptographic entropy source under any condition.
package internal
