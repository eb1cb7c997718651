package db

import (
	"github.com/rthearn/ivory/auth"
)

// LookUpIdent resolves a session token to the identity of the request.
// Unknown or stale tokens resolve to the anonymous identity.
func LookUpIdent(token string) (ident auth.Ident) {
	name, ok := auth.Sessions.Resolve(token)
	if !ok {
		return
	}

	usersMu.RLock()
	defer usersMu.RUnlock()

	u := findUser(users, name)
	if u == nil {
		// Account deleted from under a live session
		return
	}
	ident.LoggedIn = true
	ident.Username = u.Username
	ident.Role = auth.RoleOf(u.Moderator, u.Admin)
	return
}
