// Package userstore provides the Redis-backed reference implementation
// of the goCred UserStore contract. Records live in one hash per user
// with a separate case-folded email index; the multi-key writes run as
// server-side Lua scripts so they stay atomic under concurrency.
//
// Applications with an existing user database should implement
// goCred.UserStore against that database instead; this package is the
// fast path for services that keep accounts in Redis anyway and the
// fixture used throughout the integration tests.
package userstore
