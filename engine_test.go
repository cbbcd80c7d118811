package goCred

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// memUserStore is an in-memory UserStore with the same contract a real
// backend must honor: case-insensitive email uniqueness and serialized
// read-modify-write per record.
type memUserStore struct {
	mu     sync.Mutex
	users  map[string]UserRecord
	emails map[string]string
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users:  make(map[string]UserRecord),
		emails: make(map[string]string),
	}
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *memUserStore) GetUserByID(_ context.Context, userID string) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) CreateUser(_ context.Context, input CreateUserInput) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(input.Email)
	if _, taken := s.emails[key]; taken {
		return UserRecord{}, ErrDuplicateEmail
	}

	user := UserRecord{
		UserID:             uuid.NewString(),
		Email:              input.Email,
		CredentialEnvelope: input.CredentialEnvelope,
		Role:               input.Role,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
	}
	s.users[user.UserID] = user
	s.emails[key] = user.UserID
	return user, nil
}

func (s *memUserStore) UpdateCredential(_ context.Context, userID, envelope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.CredentialEnvelope = envelope
	s.users[userID] = user
	return nil
}

func (s *memUserStore) SetResetToken(_ context.Context, userID, token string, issuedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.ResetToken = token
	user.ResetTokenIssuedAt = issuedAt
	s.users[userID] = user
	return nil
}

func (s *memUserStore) CompleteReset(_ context.Context, userID, expectToken, envelope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	if user.ResetToken == "" || user.ResetToken != expectToken {
		return ErrResetConflict
	}
	user.CredentialEnvelope = envelope
	user.ResetToken = ""
	user.ResetTokenIssuedAt = time.Time{}
	s.users[userID] = user
	return nil
}

func (s *memUserStore) UpdateProfile(_ context.Context, userID string, input ProfileInput) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}

	newKey := strings.ToLower(input.Email)
	oldKey := strings.ToLower(user.Email)
	if owner, taken := s.emails[newKey]; taken && owner != userID {
		return UserRecord{}, ErrDuplicateEmail
	}

	delete(s.emails, oldKey)
	s.emails[newKey] = userID

	user.Email = input.Email
	user.Role = input.Role
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	s.users[userID] = user
	return user, nil
}

func testSigningKeys(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("ed25519 key generation failed: %v", err)
	}
	return pub, priv
}

func testEngineConfig(t *testing.T) Config {
	t.Helper()

	pub, priv := testSigningKeys(t)
	cfg := defaultConfig()
	cfg.Password.Iterations = 1_000
	cfg.Token.PrivateKey = priv
	cfg.Token.PublicKey = pub
	cfg.Token.Issuer = "gocred-test"
	return cfg
}

func newTestEngine(t *testing.T, store UserStore, mutate ...func(*Config)) *Engine {
	t.Helper()

	cfg := testEngineConfig(t)
	for _, m := range mutate {
		m(&cfg)
	}

	engine, err := New().
		WithConfig(cfg).
		WithUserStore(store).
		WithRoles([]string{"user", "admin"}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func mustRegister(t *testing.T, engine *Engine, email, pass string) *RegisterResult {
	t.Helper()

	res, err := engine.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: pass,
	})
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", email, err)
	}
	return res
}
