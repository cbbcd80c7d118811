// Package jwt issues and verifies the signed bearer tokens that the
// credential engine hands out on successful login. Claim contents and
// lifetime policy live here; signing keys are configuration.
package jwt
