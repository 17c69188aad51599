package memcache

import (
	"testing"
	"time"
)

func TestRevokedTokens(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewRevokedTokens()
	store.now = func() time.Time { return now }

	store.Revoke("a", time.Minute)
	store.Revoke("", time.Minute)
	store.Revoke("b", 0)

	if !store.IsRevoked("a") {
		t.Fatal("expected token a to be revoked")
	}
	if store.IsRevoked("b") {
		t.Fatal("zero ttl must not revoke")
	}
	if store.IsRevoked("unknown") {
		t.Fatal("unknown token reported as revoked")
	}

	now = now.Add(2 * time.Minute)
	if store.IsRevoked("a") {
		t.Fatal("revocation should lapse once the token has expired")
	}

	store.Revoke("c", time.Minute)
	if _, ok := store.data["a"]; ok {
		t.Fatal("expired entry was not swept")
	}
}
