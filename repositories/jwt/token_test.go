package jwt

import (
  "testing"
)

func TestAccessTokenRoundTrip(t *testing.T) {
  t.Setenv("JWT_SECRET", "test-secret")

  r := &TokenRepository{}
  token, err := r.AccessToken("admin-1")
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }

  uid, err := r.Uid(token)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if uid != "admin-1" {
    t.Fatalf("expected admin-1, got %v", uid)
  }
}

func TestRefreshTokenRejectedForAccess(t *testing.T) {
  t.Setenv("JWT_SECRET", "test-secret")

  r := &TokenRepository{}
  token, err := r.RefreshToken("admin-1")
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }

  if _, err := r.Uid(token); err == nil {
    t.Fatal("expected refresh token to be rejected")
  }
}

func TestUidRejectsTamperedToken(t *testing.T) {
  t.Setenv("JWT_SECRET", "test-secret")

  r := &TokenRepository{}
  token, err := r.AccessToken("admin-1")
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }

  t.Setenv("JWT_SECRET", "other-secret")
  if _, err := r.Uid(token); err == nil {
    t.Fatal("expected verification to fail with a different secret")
  }
}
