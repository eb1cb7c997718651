package db

import (
	"testing"

	"github.com/rthearn/ivory/auth"
	. "github.com/rthearn/ivory/test"
)

func TestLookUpIdent(t *testing.T) {
	setupDB(t)

	if err := RegisterUser(sampleUser("ada")); err != nil {
		t.Fatal(err)
	}
	if err := SetUserFlags("ada", true, true, false); err != nil {
		t.Fatal(err)
	}
	token, err := auth.Sessions.Issue("ada")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("valid token", func(t *testing.T) {
		AssertDeepEquals(t, LookUpIdent(token), auth.Ident{
			LoggedIn: true,
			Username: "ada",
			Role:     auth.Moderator,
		})
	})

	t.Run("unknown token", func(t *testing.T) {
		AssertDeepEquals(t, LookUpIdent("bogus"), auth.Ident{})
	})

	t.Run("deleted account", func(t *testing.T) {
		if err := DeleteUser("ada"); err != nil {
			t.Fatal(err)
		}
		AssertDeepEquals(t, LookUpIdent(token), auth.Ident{})
	})
}
