package db

import (
	"errors"

	"github.com/rthearn/ivory/common"
)

// ErrUserNameTaken denotes a user name the client is trying to register
// with is already taken
var ErrUserNameTaken = errors.New("user name already taken")

func findUser(us []common.User, name string) *common.User {
	for i := range us {
		if us[i].Username == name {
			return &us[i]
		}
	}
	return nil
}

// RegisterUser appends a new account to the users collection. The
// username must not collide with an existing one.
func RegisterUser(u common.User) error {
	return mutateUsers(func(us *[]common.User) error {
		if findUser(*us, u.Username) != nil {
			return ErrUserNameTaken
		}
		*us = append(*us, u)
		return nil
	})
}

// GetUser returns a copy of the account stored under name
func GetUser(name string) (u common.User, err error) {
	usersMu.RLock()
	defer usersMu.RUnlock()

	stored := findUser(users, name)
	if stored == nil {
		err = common.ErrNotFound("user")
		return
	}
	err = clone(&u, *stored)
	return
}

// AllUsers returns a copy of the entire users collection
func AllUsers() (us []common.User, err error) {
	usersMu.RLock()
	defer usersMu.RUnlock()
	err = clone(&us, users)
	return
}

// GetLoginHash returns the password hash and verification status of an
// account
func GetLoginHash(name string) (hash string, verified bool, err error) {
	usersMu.RLock()
	defer usersMu.RUnlock()

	u := findUser(users, name)
	if u == nil {
		err = common.ErrNotFound("user")
		return
	}
	return u.Hash, u.Verified, nil
}

// SetUserFlags sets the role flags of an account
func SetUserFlags(name string, verified, moderator, admin bool) error {
	return mutateUsers(func(us *[]common.User) error {
		u := findUser(*us, name)
		if u == nil {
			return common.ErrNotFound("user")
		}
		u.Verified = verified
		u.Moderator = moderator
		u.Admin = admin
		return nil
	})
}

// UpdateProfile overwrites the user-editable fields of an account
func UpdateProfile(name string, p common.Profile) error {
	return mutateUsers(func(us *[]common.User) error {
		u := findUser(*us, name)
		if u == nil {
			return common.ErrNotFound("user")
		}
		u.Description = p.Description
		u.About = p.About
		u.ProfilePicture = p.ProfilePicture
		u.Contacts = p.Contacts
		return nil
	})
}

// SetUserBadges replaces the badge set of an account. Every requested
// badge name must exist as a badge definition, or nothing is applied.
func SetUserBadges(name string, badges []string) error {
	forumMu.RLock()
	defined := make(map[string]bool, len(forum.Badges))
	for _, b := range forum.Badges {
		defined[b.Name] = true
	}
	forumMu.RUnlock()

	for _, b := range badges {
		if !defined[b] {
			return common.ErrNotFound("badge " + b)
		}
	}

	return mutateUsers(func(us *[]common.User) error {
		u := findUser(*us, name)
		if u == nil {
			return common.ErrNotFound("user")
		}
		u.Badges = badges
		return nil
	})
}

// DeleteUser removes an account from the collection. Content authored by
// the account is not cascaded; its author references become dangling
// weak references.
func DeleteUser(name string) error {
	return mutateUsers(func(us *[]common.User) error {
		for i := range *us {
			if (*us)[i].Username == name {
				*us = append((*us)[:i], (*us)[i+1:]...)
				return nil
			}
		}
		return common.ErrNotFound("user")
	})
}
