package auth

import "testing"

func TestSessionLifecycle(t *testing.T) {
	r := new(SessionRegistry)

	token, err := r.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}
	user, ok := r.Resolve(token)
	if !ok || user != "alice" {
		t.Fatalf("unexpected resolution: %q %v", user, ok)
	}

	r.Revoke(token)
	if _, ok = r.Resolve(token); ok {
		t.Fatal("revoked token still resolves")
	}

	// Revoking an unknown token is a no-op
	r.Revoke("does not exist")
}

func TestSingleSessionPerUser(t *testing.T) {
	r := new(SessionRegistry)

	old, err := r.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}
	next, err := r.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}
	if old == next {
		t.Fatal("token reissued")
	}

	if _, ok := r.Resolve(old); ok {
		t.Fatal("evicted token still resolves")
	}
	if user, ok := r.Resolve(next); !ok || user != "alice" {
		t.Fatalf("unexpected resolution: %q %v", user, ok)
	}

	// Other users are unaffected
	bob, err := r.Issue("bob")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = r.Issue("alice"); err != nil {
		t.Fatal(err)
	}
	if user, ok := r.Resolve(bob); !ok || user != "bob" {
		t.Fatalf("unexpected resolution: %q %v", user, ok)
	}
}

func TestRevokeUser(t *testing.T) {
	r := new(SessionRegistry)

	token, err := r.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}
	r.RevokeUser("alice")
	if _, ok := r.Resolve(token); ok {
		t.Fatal("revoked token still resolves")
	}

	// Revoking a user with no session is a no-op
	r.RevokeUser("bob")
}

func TestResolveEmptyToken(t *testing.T) {
	r := new(SessionRegistry)
	if _, ok := r.Resolve(""); ok {
		t.Fatal("empty token resolved")
	}
}
