package db

import (
	"time"

	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/config"
)

func findBoard(f *common.ForumTree, name string) *common.Board {
	for i := range f.Boards {
		if f.Boards[i].Name == name {
			return &f.Boards[i]
		}
	}
	return nil
}

func findTopic(f *common.ForumTree, board, topic string) (*common.Topic, error) {
	b := findBoard(f, board)
	if b == nil {
		return nil, common.ErrNotFound("board")
	}
	for i := range b.Topics {
		if b.Topics[i].Name == topic {
			return &b.Topics[i], nil
		}
	}
	return nil, common.ErrNotFound("topic")
}

// GetBoards returns a copy of all boards
func GetBoards() (boards []common.Board, err error) {
	forumMu.RLock()
	defer forumMu.RUnlock()
	err = clone(&boards, forum.Boards)
	if boards == nil {
		boards = []common.Board{}
	}
	return
}

// GetBoard returns a copy of a single board by name
func GetBoard(name string) (b common.Board, err error) {
	forumMu.RLock()
	defer forumMu.RUnlock()

	stored := findBoard(&forum, name)
	if stored == nil {
		err = common.ErrNotFound("board")
		return
	}
	err = clone(&b, *stored)
	return
}

// GetTopic returns a copy of a single topic by board and name
func GetTopic(board, topic string) (t common.Topic, err error) {
	forumMu.RLock()
	defer forumMu.RUnlock()

	stored, err := findTopic(&forum, board, topic)
	if err != nil {
		return
	}
	err = clone(&t, *stored)
	return
}

// CreateBoard adds a new empty board. Board names are unique.
func CreateBoard(name, description string) error {
	return mutateForum(func(f *common.ForumTree) error {
		if findBoard(f, name) != nil {
			return common.ErrInvalidInput(
				"a board with this name already exists")
		}
		f.Boards = append(f.Boards, common.Board{
			Name:        name,
			Description: description,
			Topics:      []common.Topic{},
		})
		return nil
	})
}

// DeleteBoard removes a board and all its topic listings. Post files are
// not touched.
func DeleteBoard(name string) error {
	return mutateForum(func(f *common.ForumTree) error {
		for i := range f.Boards {
			if f.Boards[i].Name == name {
				f.Boards = append(f.Boards[:i], f.Boards[i+1:]...)
				return nil
			}
		}
		return common.ErrNotFound("board")
	})
}

// CreateTopic adds a new empty topic to a board. Topic names are unique
// within their board.
func CreateTopic(board, name, description string) error {
	return mutateForum(func(f *common.ForumTree) error {
		b := findBoard(f, board)
		if b == nil {
			return common.ErrNotFound("board")
		}
		for i := range b.Topics {
			if b.Topics[i].Name == name {
				return common.ErrInvalidInput(
					"a topic with this name already exists")
			}
		}
		b.Topics = append(b.Topics, common.Topic{
			Name:        name,
			Description: description,
			Posts:       []uint64{},
			Stickied:    []uint64{},
		})
		return nil
	})
}

// DeleteTopic removes a topic and its post listings from a board
func DeleteTopic(board, topic string) error {
	return mutateForum(func(f *common.ForumTree) error {
		b := findBoard(f, board)
		if b == nil {
			return common.ErrNotFound("board")
		}
		for i := range b.Topics {
			if b.Topics[i].Name == topic {
				b.Topics = append(b.Topics[:i], b.Topics[i+1:]...)
				return nil
			}
		}
		return common.ErrNotFound("topic")
	})
}

// SetTopicLock locks or unlocks a topic for new posts
func SetTopicLock(board, topic string, locked bool) error {
	return mutateForum(func(f *common.ForumTree) error {
		t, err := findTopic(f, board, topic)
		if err != nil {
			return err
		}
		t.Locked = locked
		return nil
	})
}

// SetSticky moves a post id between the regular and stickied lists of
// its topic. The id must be present in the source list implied by
// sticky, or the operation fails with a not found error.
func SetSticky(board, topic string, id uint64, sticky bool) error {
	return mutateForum(func(f *common.ForumTree) error {
		t, err := findTopic(f, board, topic)
		if err != nil {
			return err
		}

		src, dst := &t.Posts, &t.Stickied
		if !sticky {
			src, dst = dst, src
		}
		for i := range *src {
			if (*src)[i] == id {
				*src = append((*src)[:i], (*src)[i+1:]...)
				*dst = append([]uint64{id}, *dst...)
				return nil
			}
		}
		return common.ErrNotFound("post in topic")
	})
}

// CreateNews prepends a news item and returns its id
func CreateNews(title, author, body string) (id uint64, err error) {
	err = mutateForum(func(f *common.ForumTree) error {
		id = f.NewsIndex
		f.News = append([]common.News{{
			ID:      id,
			Title:   title,
			Author:  author,
			Body:    body,
			Created: time.Now().UTC(),
		}}, f.News...)
		f.NewsIndex++
		return nil
	})
	return
}

// EditNews overwrites the title and body of a news item
func EditNews(id uint64, title, body string) error {
	return mutateForum(func(f *common.ForumTree) error {
		for i := range f.News {
			if f.News[i].ID == id {
				f.News[i].Title = title
				f.News[i].Body = body
				return nil
			}
		}
		return common.ErrNotFound("news post")
	})
}

// DeleteNews removes a news item
func DeleteNews(id uint64) error {
	return mutateForum(func(f *common.ForumTree) error {
		for i := range f.News {
			if f.News[i].ID == id {
				f.News = append(f.News[:i], f.News[i+1:]...)
				return nil
			}
		}
		return common.ErrNotFound("news post")
	})
}

// GetNewsPage returns one page of news items, newest first
func GetNewsPage(page int) (news []common.News, err error) {
	forumMu.RLock()
	defer forumMu.RUnlock()

	lo, hi, err := pageBounds(len(forum.News), page, config.Get().NewsPerPage)
	if err != nil {
		return
	}
	err = clone(&news, forum.News[lo:hi])
	if news == nil {
		news = []common.News{}
	}
	return
}

// GetBadges returns a copy of all badge definitions
func GetBadges() (badges []common.Badge, err error) {
	forumMu.RLock()
	defer forumMu.RUnlock()
	err = clone(&badges, forum.Badges)
	if badges == nil {
		badges = []common.Badge{}
	}
	return
}

// GetBadge returns a single badge definition by name
func GetBadge(name string) (b common.Badge, err error) {
	forumMu.RLock()
	defer forumMu.RUnlock()

	for _, stored := range forum.Badges {
		if stored.Name == name {
			return stored, nil
		}
	}
	err = common.ErrNotFound("badge")
	return
}

// CreateBadge adds a new badge definition. Badge names are unique.
func CreateBadge(b common.Badge) error {
	return mutateForum(func(f *common.ForumTree) error {
		for i := range f.Badges {
			if f.Badges[i].Name == b.Name {
				return common.ErrInvalidInput(
					"a badge with this name already exists")
			}
		}
		f.Badges = append(f.Badges, b)
		return nil
	})
}

// EditBadge overwrites the badge stored under name. Renames must not
// collide with another badge.
func EditBadge(name string, b common.Badge) error {
	return mutateForum(func(f *common.ForumTree) error {
		for i := range f.Badges {
			if f.Badges[i].Name == b.Name && f.Badges[i].Name != name {
				return common.ErrInvalidInput(
					"two badges cannot have the same name")
			}
		}
		for i := range f.Badges {
			if f.Badges[i].Name == name {
				f.Badges[i] = b
				return nil
			}
		}
		return common.ErrNotFound("badge")
	})
}

// DeleteBadge removes a badge definition. Badge names still assigned to
// users become dangling and resolve to nothing on display.
func DeleteBadge(name string) error {
	return mutateForum(func(f *common.ForumTree) error {
		for i := range f.Badges {
			if f.Badges[i].Name == name {
				f.Badges = append(f.Badges[:i], f.Badges[i+1:]...)
				return nil
			}
		}
		return common.ErrNotFound("badge")
	})
}
