package goCred

import (
	"context"
	"errors"
	"testing"
)

func TestUpdateProfileReassignsFields(t *testing.T) {
	store := newMemUserStore()
	engine := newTestEngine(t, store)
	reg := mustRegister(t, engine, "alice@example.com", "Valid123")

	updated, err := engine.UpdateProfile(context.Background(), UpdateProfileRequest{
		UserID:    reg.UserID,
		Email:     "Alice.Smith@Example.com",
		Role:      "admin",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Email != "alice.smith@example.com" {
		t.Fatalf("email not normalized: %q", updated.Email)
	}
	if updated.Role != "admin" || updated.FirstName != "Alice" || updated.LastName != "Smith" {
		t.Fatalf("unexpected record: %+v", updated)
	}

	// Login must follow the new email and carry the new role.
	res, err := engine.Login(context.Background(), "alice.smith@example.com", "Valid123")
	if err != nil {
		t.Fatalf("Login after update failed: %v", err)
	}
	if res.Role != "admin" {
		t.Fatalf("role = %q, want admin", res.Role)
	}
	if _, err := engine.Login(context.Background(), "alice@example.com", "Valid123"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("old email still logs in: %v", err)
	}
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	store := newMemUserStore()
	engine := newTestEngine(t, store)
	mustRegister(t, engine, "alice@example.com", "Valid123")
	bob := mustRegister(t, engine, "bob@example.com", "Valid123")

	_, err := engine.UpdateProfile(context.Background(), UpdateProfileRequest{
		UserID: bob.UserID,
		Email:  "ALICE@example.com",
		Role:   "user",
	})
	if !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("got %v, want ErrEmailInUse", err)
	}
}

func TestUpdateProfileKeepsOwnEmail(t *testing.T) {
	store := newMemUserStore()
	engine := newTestEngine(t, store)
	reg := mustRegister(t, engine, "alice@example.com", "Valid123")

	if _, err := engine.UpdateProfile(context.Background(), UpdateProfileRequest{
		UserID:    reg.UserID,
		Email:     "alice@example.com",
		Role:      "user",
		FirstName: "Alice",
	}); err != nil {
		t.Fatalf("re-submitting the same email must not conflict: %v", err)
	}
}

func TestUpdateProfileValidatesInput(t *testing.T) {
	store := newMemUserStore()
	engine := newTestEngine(t, store)
	reg := mustRegister(t, engine, "alice@example.com", "Valid123")

	if _, err := engine.UpdateProfile(context.Background(), UpdateProfileRequest{
		UserID: reg.UserID,
		Email:  "not-an-email",
		Role:   "user",
	}); !errors.Is(err, ErrEmailInvalid) {
		t.Fatalf("got %v, want ErrEmailInvalid", err)
	}

	if _, err := engine.UpdateProfile(context.Background(), UpdateProfileRequest{
		UserID: reg.UserID,
		Email:  "alice@example.com",
		Role:   "superuser",
	}); !errors.Is(err, ErrRoleInvalid) {
		t.Fatalf("got %v, want ErrRoleInvalid", err)
	}

	if _, err := engine.UpdateProfile(context.Background(), UpdateProfileRequest{
		UserID: "missing",
		Email:  "new@example.com",
		Role:   "user",
	}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}
