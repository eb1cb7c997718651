// Package auth determines and asserts client permissions to access and
// modify resources.
package auth

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// Role is the privilege level of a client. Levels are strictly ordered.
type Role uint8

// All available client privilege levels
const (
	Anonymous Role = iota
	Member
	Moderator
	Admin
)

func (r Role) String() string {
	switch r {
	case Member:
		return "User"
	case Moderator:
		return "Moderator"
	case Admin:
		return "Admin"
	default:
		return "Anonymous"
	}
}

// RoleOf derives the privilege level from account flags. The admin flag
// dominates the moderator flag.
func RoleOf(moderator, admin bool) Role {
	switch {
	case admin:
		return Admin
	case moderator:
		return Moderator
	default:
		return Member
	}
}

// Ident identifies the client making a request. The zero value is an
// anonymous caller.
type Ident struct {
	LoggedIn bool
	Username string
	Role     Role
}

// RandomID generates a randomized base64 string of passed byte length
func RandomID(length int) (string, error) {
	buf := make([]byte, length)
	_, err := rand.Read(buf)
	return base64.RawStdEncoding.EncodeToString(buf), err
}

// BcryptHash generates a bcrypt hash from the passed string
func BcryptHash(password string, rounds int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), rounds)
	return string(hash), err
}

// BcryptCompare compares a bcrypt hash with a user-supplied string
func BcryptCompare(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
