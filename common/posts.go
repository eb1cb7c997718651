package common

import "time"

// Post is a single discussion unit persisted as posts/<id>.json. Reply 0
// is the originating message; deleting it deletes the whole post.
type Post struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"name"`
	Created    time.Time `json:"date"`
	Locked     bool      `json:"locked"`
	ReplyIndex uint64    `json:"replyIndex"`
	Replies    []Reply   `json:"replies"`
}

// Reply is one message inside a post. Ids are sequential per post and
// never reused, even after deletion. The author field is a weak
// reference by username.
type Reply struct {
	ID      uint64    `json:"id"`
	Author  string    `json:"author"`
	Body    string    `json:"body"`
	Created time.Time `json:"date"`
}
