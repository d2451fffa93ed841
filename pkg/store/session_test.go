package store

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestJWTSessionRoundTrip(t *testing.T) {
	s := NewJWTSessionStore("test-secret", time.Minute, nil)
	token, err := s.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	uid, ok, err := s.GetUserIDByToken(token)
	if err != nil || !ok {
		t.Fatalf("resolve token: ok=%v err=%v", ok, err)
	}
	if uid != "user-1" {
		t.Fatalf("unexpected user id: %q", uid)
	}
}

func TestJWTSessionRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTSessionStore("secret-a", time.Minute, nil)
	verifier := NewJWTSessionStore("secret-b", time.Minute, nil)
	token, err := issuer.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, err := verifier.GetUserIDByToken(token); ok || err == nil {
		t.Fatalf("expected verification failure for wrong secret")
	}
}

func TestJWTSessionExpires(t *testing.T) {
	s := NewJWTSessionStore("test-secret", -time.Minute, nil)
	token, err := s.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, err := s.GetUserIDByToken(token); ok || err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestJWTSessionRevokedOnDelete(t *testing.T) {
	s := NewJWTSessionStore("test-secret", time.Minute, NewMemoryTokenRevoker())
	token, err := s.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, _ := s.GetUserIDByToken(token); !ok {
		t.Fatal("token should resolve before revocation")
	}
	if err := s.DeleteSession(token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, _ := s.GetUserIDByToken(token); ok {
		t.Fatal("revoked token should not resolve")
	}
}

func TestRedisTokenRevoker(t *testing.T) {
	redis := miniredis.RunT(t)
	r := NewRedisTokenRevoker(redis.Addr(), "")
	if err := r.Revoke("tok", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err := r.IsRevoked("tok")
	if err != nil || !revoked {
		t.Fatalf("IsRevoked = %v, %v", revoked, err)
	}
	if revoked, _ := r.IsRevoked("other"); revoked {
		t.Fatal("unrevoked token reported revoked")
	}
}

func TestRedisSessionRoundTripAndDelete(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisSessionStore(redis.Addr(), "", time.Minute)

	token, err := s.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	uid, ok, err := s.GetUserIDByToken(token)
	if err != nil || !ok {
		t.Fatalf("resolve token: ok=%v err=%v", ok, err)
	}
	if uid != "user-1" {
		t.Fatalf("unexpected user id: %q", uid)
	}

	if err := s.DeleteSession(token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, _ := s.GetUserIDByToken(token); ok {
		t.Fatalf("expected token gone after delete")
	}
}
