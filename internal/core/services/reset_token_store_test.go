package services

import (
	"testing"
	"time"
)

func TestResetTokenStore_IssueLookupConsume(t *testing.T) {
	store := NewResetTokenStore(time.Hour)

	token, err := store.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(token) < 40 {
		t.Fatalf("expected a long random token, got %q", token)
	}

	other, err := store.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if other == token {
		t.Fatalf("expected distinct tokens")
	}

	userID, ok := store.Lookup(token)
	if !ok || userID != 42 {
		t.Fatalf("expected lookup to find user 42, got %d ok=%v", userID, ok)
	}

	store.Consume(token)
	if _, ok := store.Lookup(token); ok {
		t.Fatalf("expected consumed token to be gone")
	}
	if _, ok := store.Lookup(other); !ok {
		t.Fatalf("expected other token to survive")
	}
}

func TestResetTokenStore_Expiry(t *testing.T) {
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	store := NewResetTokenStore(time.Hour)
	store.SetClock(fixedClock(now))

	old, _ := store.Issue(1)
	store.SetClock(fixedClock(now.Add(30 * time.Minute)))
	fresh, _ := store.Issue(2)

	store.SetClock(fixedClock(now.Add(time.Hour)))
	if _, ok := store.Lookup(old); ok {
		t.Fatalf("expected token to expire at its ttl")
	}
	if store.Len() != 1 {
		t.Fatalf("expected expired token removed on lookup, have %d", store.Len())
	}

	store.SetClock(fixedClock(now.Add(2 * time.Hour)))
	if n := store.PurgeExpired(); n != 1 {
		t.Fatalf("expected 1 purged token, got %d", n)
	}
	if _, ok := store.Lookup(fresh); ok {
		t.Fatalf("expected purged token to be gone")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, have %d", store.Len())
	}
}
