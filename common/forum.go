package common

import "time"

// ForumTree is the entire board structure as stored in forum.json.
// Posts are referenced by id only, never inlined.
type ForumTree struct {
	Boards    []Board `json:"boards"`
	News      []News  `json:"news"`
	Badges    []Badge `json:"badges"`
	PostIndex uint64  `json:"post_index"`
	NewsIndex uint64  `json:"news_index"`
}

// Board is a top-level forum category containing topics
type Board struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Topics      []Topic `json:"topics"`
}

// Topic is a named discussion container within a board. A post id is
// present in at most one of Posts and Stickied at any time.
type Topic struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Posts       []uint64 `json:"posts"`
	Stickied    []uint64 `json:"stickied_posts"`
	Locked      bool     `json:"locked"`
}

// News is a single front page news item
type News struct {
	ID      uint64    `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Body    string    `json:"body"`
	Created time.Time `json:"date"`
}

// Badge is a decorative profile marker administrators define and assign
// to users
type Badge struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}
