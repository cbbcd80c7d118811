package userstore

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	goCred "github.com/MrEthical07/goCred"
)

// DefaultPrefix namespaces all keys written by this store.
const DefaultPrefix = "gc"

const (
	fieldEmail         = "email"
	fieldEnvelope      = "envelope"
	fieldResetToken    = "reset_token"
	fieldResetIssuedAt = "reset_issued_at"
	fieldRole          = "role"
	fieldFirstName     = "first_name"
	fieldLastName      = "last_name"
)

// Record layout: one hash per user at <prefix>:u:<id>, plus an email
// index at <prefix>:e:<lowercased email> holding the user id. Every
// write that touches the index or couples two fields runs as a Lua
// script so concurrent requests observe it atomically.

const createUserScript = `
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 0
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("HSET", KEYS[2],
  "email", ARGV[2],
  "envelope", ARGV[3],
  "role", ARGV[4],
  "first_name", ARGV[5],
  "last_name", ARGV[6])
return 1
`

const setResetTokenScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "reset_token", ARGV[1], "reset_issued_at", ARGV[2])
return 1
`

const updateCredentialScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "envelope", ARGV[1])
return 1
`

const completeResetScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
local tok = redis.call("HGET", KEYS[1], "reset_token")
if not tok or tok == "" or tok ~= ARGV[1] then
  return 0
end
redis.call("HSET", KEYS[1], "envelope", ARGV[2])
redis.call("HDEL", KEYS[1], "reset_token", "reset_issued_at")
return 1
`

const updateProfileScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
local owner = redis.call("GET", KEYS[2])
if owner and owner ~= ARGV[1] then
  return 0
end
local old = redis.call("HGET", KEYS[1], "email")
if old then
  local oldkey = ARGV[6] .. string.lower(old)
  if redis.call("GET", oldkey) == ARGV[1] then
    redis.call("DEL", oldkey)
  end
end
redis.call("SET", KEYS[2], ARGV[1])
redis.call("HSET", KEYS[1],
  "email", ARGV[2],
  "role", ARGV[3],
  "first_name", ARGV[4],
  "last_name", ARGV[5])
return 1
`

var (
	createUserLua       = redis.NewScript(createUserScript)
	setResetTokenLua    = redis.NewScript(setResetTokenScript)
	updateCredentialLua = redis.NewScript(updateCredentialScript)
	completeResetLua    = redis.NewScript(completeResetScript)
	updateProfileLua    = redis.NewScript(updateProfileScript)
)

// Store is a Redis-backed [goCred.UserStore]. All operations are
// single round trips; the multi-key ones execute server-side as Lua
// scripts, which gives the per-record serialization the contract asks
// for without client-side locking.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

// New returns a Store writing under prefix. An empty prefix selects
// DefaultPrefix.
func New(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) userKey(userID string) string {
	return s.prefix + ":u:" + userID
}

func (s *Store) emailKey(email string) string {
	return s.prefix + ":e:" + strings.ToLower(email)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (goCred.UserRecord, error) {
	userID, err := s.rdb.Get(ctx, s.emailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return goCred.UserRecord{}, goCred.ErrUserNotFound
		}
		return goCred.UserRecord{}, err
	}
	return s.GetUserByID(ctx, userID)
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (goCred.UserRecord, error) {
	fields, err := s.rdb.HGetAll(ctx, s.userKey(userID)).Result()
	if err != nil {
		return goCred.UserRecord{}, err
	}
	if len(fields) == 0 {
		return goCred.UserRecord{}, goCred.ErrUserNotFound
	}

	record := goCred.UserRecord{
		UserID:             userID,
		Email:              fields[fieldEmail],
		CredentialEnvelope: fields[fieldEnvelope],
		ResetToken:         fields[fieldResetToken],
		Role:               fields[fieldRole],
		FirstName:          fields[fieldFirstName],
		LastName:           fields[fieldLastName],
	}
	if raw := fields[fieldResetIssuedAt]; raw != "" {
		nanos, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			return goCred.UserRecord{}, errors.New("userstore: corrupt reset_issued_at field")
		}
		record.ResetTokenIssuedAt = time.Unix(0, nanos).UTC()
	}
	return record, nil
}

func (s *Store) CreateUser(ctx context.Context, input goCred.CreateUserInput) (goCred.UserRecord, error) {
	userID := uuid.NewString()

	status, err := createUserLua.Run(ctx, s.rdb,
		[]string{s.emailKey(input.Email), s.userKey(userID)},
		userID, input.Email, input.CredentialEnvelope, input.Role, input.FirstName, input.LastName,
	).Int64()
	if err != nil {
		return goCred.UserRecord{}, err
	}
	if status == 0 {
		return goCred.UserRecord{}, goCred.ErrDuplicateEmail
	}

	return goCred.UserRecord{
		UserID:             userID,
		Email:              input.Email,
		CredentialEnvelope: input.CredentialEnvelope,
		Role:               input.Role,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
	}, nil
}

func (s *Store) UpdateCredential(ctx context.Context, userID, envelope string) error {
	status, err := updateCredentialLua.Run(ctx, s.rdb,
		[]string{s.userKey(userID)},
		envelope,
	).Int64()
	if err != nil {
		return err
	}
	if status == 0 {
		return goCred.ErrUserNotFound
	}
	return nil
}

func (s *Store) SetResetToken(ctx context.Context, userID, token string, issuedAt time.Time) error {
	status, err := setResetTokenLua.Run(ctx, s.rdb,
		[]string{s.userKey(userID)},
		token, strconv.FormatInt(issuedAt.UnixNano(), 10),
	).Int64()
	if err != nil {
		return err
	}
	if status == 0 {
		return goCred.ErrUserNotFound
	}
	return nil
}

func (s *Store) CompleteReset(ctx context.Context, userID, expectToken, envelope string) error {
	status, err := completeResetLua.Run(ctx, s.rdb,
		[]string{s.userKey(userID)},
		expectToken, envelope,
	).Int64()
	if err != nil {
		return err
	}
	switch status {
	case -1:
		return goCred.ErrUserNotFound
	case 0:
		return goCred.ErrResetConflict
	default:
		return nil
	}
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, input goCred.ProfileInput) (goCred.UserRecord, error) {
	// The previous email's index key is resolved inside the script from
	// the stored record. A client-side read here would race concurrent
	// updates of the same user and could orphan an index entry.
	status, err := updateProfileLua.Run(ctx, s.rdb,
		[]string{s.userKey(userID), s.emailKey(input.Email)},
		userID, input.Email, input.Role, input.FirstName, input.LastName, s.prefix+":e:",
	).Int64()
	if err != nil {
		return goCred.UserRecord{}, err
	}
	switch status {
	case -1:
		return goCred.UserRecord{}, goCred.ErrUserNotFound
	case 0:
		return goCred.UserRecord{}, goCred.ErrDuplicateEmail
	}

	return s.GetUserByID(ctx, userID)
}
