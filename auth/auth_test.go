package auth

import (
	"testing"

	. "github.com/rthearn/ivory/test"
)

func TestBcryptRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := BcryptHash("123456", 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := BcryptCompare("123456", hash); err != nil {
		t.Fatal(err)
	}
	if err := BcryptCompare("654321", hash); err == nil {
		t.Fatal("mismatched password accepted")
	}
}

func TestRoleOf(t *testing.T) {
	t.Parallel()

	cases := [...]struct {
		name            string
		moderator, admin bool
		role            Role
	}{
		{"plain member", false, false, Member},
		{"moderator", true, false, Moderator},
		{"admin", false, true, Admin},
		{"admin flag dominates", true, true, Admin},
	}

	for i := range cases {
		c := cases[i]
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if r := RoleOf(c.moderator, c.admin); r != c.role {
				LogUnexpected(t, c.role, r)
			}
		})
	}
}

func TestRoleOrdering(t *testing.T) {
	t.Parallel()

	if !(Anonymous < Member && Member < Moderator && Moderator < Admin) {
		t.Fatal("role levels are not strictly ordered")
	}
}

func TestRandomID(t *testing.T) {
	t.Parallel()

	a, err := RandomID(64)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RandomID(64)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("tokens not unique")
	}
}
