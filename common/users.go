package common

import "time"

// User is a registered forum account as stored in users.json. The
// username is the immutable primary key of the collection.
type User struct {
	Username       string     `json:"username"`
	Hash           string     `json:"hash"`
	Email          string     `json:"email"`
	Description    string     `json:"description"`
	About          string     `json:"about"`
	Verified       bool       `json:"verified"`
	Moderator      bool       `json:"moderator"`
	Admin          bool       `json:"admin"`
	Posts          []uint64   `json:"posts"`
	Replies        []ReplyRef `json:"replies"`
	Contacts       Contacts   `json:"contacts"`
	Badges         []string   `json:"badges"`
	Created        time.Time  `json:"creationDate"`
	ProfilePicture string     `json:"profile_picture"`
}

// ReplyRef points at a single reply inside a post
type ReplyRef struct {
	Post  uint64 `json:"post"`
	Reply uint64 `json:"reply"`
}

// Contacts are the external handles a user chose to display on their
// profile
type Contacts struct {
	Discord string `json:"discord"`
	Email   string `json:"email"`
	Reddit  string `json:"reddit"`
	Twitter string `json:"twitter"`
	YouTube string `json:"youtube"`
}

// Profile is the user-editable subset of an account
type Profile struct {
	Description    string
	About          string
	ProfilePicture string
	Contacts       Contacts
}
