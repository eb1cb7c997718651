package auth

import "sync"

// Number of random bytes in a session token. 64 bytes give 512 bits of
// entropy.
const tokenLength = 64

// Sessions is the process-lifetime login session registry
var Sessions = &SessionRegistry{}

// SessionRegistry maps opaque bearer tokens to usernames for the
// lifetime of the process. Entries are created on login and removed on
// logout; there is no expiry sweep.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions []session
}

type session struct {
	token, user string
}

// Issue generates a new session token bound to user. Any existing
// session of the same user is evicted first, so each user holds at most
// one active session.
func (r *SessionRegistry) Issue(user string) (token string, err error) {
	token, err = RandomID(tokenLength)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].user == user {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			break
		}
	}
	r.sessions = append(r.sessions, session{token, user})
	return
}

// Revoke removes the session matching token, if any
func (r *SessionRegistry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].token == token {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return
		}
	}
}

// RevokeUser removes the session bound to user, if any
func (r *SessionRegistry) RevokeUser(user string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].user == user {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return
		}
	}
}

// Resolve returns the username bound to token. The username is not
// guaranteed to still exist in the users collection.
func (r *SessionRegistry) Resolve(token string) (user string, ok bool) {
	if token == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].token == token {
			return r.sessions[i].user, true
		}
	}
	return
}

// Clear removes all active sessions. Only use in tests.
func (r *SessionRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = nil
}
