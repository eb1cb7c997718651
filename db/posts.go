package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rthearn/ivory/auth"
	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/config"
)

func postPath(id uint64) string {
	return filepath.Join(postDir(), fmt.Sprintf("%d.json", id))
}

func deletedPostPath(id uint64) string {
	return filepath.Join(postDir(), "deleted", fmt.Sprintf("%d.json", id))
}

func loadPost(id uint64, post *common.Post) error {
	if _, err := os.Stat(postPath(id)); os.IsNotExist(err) {
		return common.ErrNotFound("post")
	}
	if err := loadJSON(postPath(id), post); err != nil {
		return common.ErrPersistence(err)
	}
	return nil
}

// InsertPost creates a new post in a topic and registers it on the
// author's account. Returns the allocated post id.
func InsertPost(board, topic, title, author, body string) (
	id uint64, err error,
) {
	now := time.Now().UTC()

	err = mutateForum(func(f *common.ForumTree) error {
		t, err := findTopic(f, board, topic)
		if err != nil {
			return err
		}
		if t.Locked {
			return common.ErrAccessDenied("this topic is locked")
		}

		id = f.PostIndex
		post := common.Post{
			ID:         id,
			Title:      title,
			Created:    now,
			ReplyIndex: 1,
			Replies: []common.Reply{
				{
					ID:      0,
					Author:  author,
					Body:    body,
					Created: now,
				},
			},
		}
		if err := saveJSON(postPath(id), post); err != nil {
			return common.ErrPersistence(err)
		}

		t.Posts = append([]uint64{id}, t.Posts...)
		f.PostIndex++
		return nil
	})
	if err != nil {
		return
	}

	err = mutateUsers(func(us *[]common.User) error {
		// Weak reference: a missing account simply carries no listing
		if u := findUser(*us, author); u != nil {
			u.Posts = append([]uint64{id}, u.Posts...)
		}
		return nil
	})
	return
}

// GetPost returns a post with all its replies
func GetPost(id uint64) (post common.Post, err error) {
	m := lockPost(id)
	m.Lock()
	defer m.Unlock()
	err = loadPost(id, &post)
	return
}

// GetPostPage returns a post holding only the requested page of replies
func GetPostPage(id uint64, page int) (post common.Post, err error) {
	post, err = GetPost(id)
	if err != nil {
		return
	}
	lo, hi, err := pageBounds(
		len(post.Replies), page, config.Get().RepliesPerPage)
	if err != nil {
		return
	}
	post.Replies = post.Replies[lo:hi]
	return
}

// Reply appends a new reply to a post and registers it on the author's
// account. Returns the allocated per-post reply id.
func Reply(id uint64, author, body string) (replyID uint64, err error) {
	m := lockPost(id)
	m.Lock()
	defer m.Unlock()

	var post common.Post
	if err = loadPost(id, &post); err != nil {
		return
	}
	if post.Locked {
		err = common.ErrAccessDenied("this post is locked")
		return
	}

	replyID = post.ReplyIndex
	post.Replies = append(post.Replies, common.Reply{
		ID:      replyID,
		Author:  author,
		Body:    body,
		Created: time.Now().UTC(),
	})
	post.ReplyIndex++
	if err = saveJSON(postPath(id), post); err != nil {
		err = common.ErrPersistence(err)
		return
	}

	err = mutateUsers(func(us *[]common.User) error {
		if u := findUser(*us, author); u != nil {
			u.Replies = append(
				[]common.ReplyRef{{Post: id, Reply: replyID}},
				u.Replies...)
		}
		return nil
	})
	return
}

// EditReply overwrites the body of a reply. Only the recorded author may
// edit it.
func EditReply(postID, replyID uint64, caller, body string) error {
	m := lockPost(postID)
	m.Lock()
	defer m.Unlock()

	var post common.Post
	if err := loadPost(postID, &post); err != nil {
		return err
	}
	if post.Locked {
		return common.ErrAccessDenied("this post is locked")
	}
	for i := range post.Replies {
		if post.Replies[i].ID != replyID {
			continue
		}
		if post.Replies[i].Author != caller {
			return common.ErrNoPermissions
		}
		post.Replies[i].Body = body
		if err := saveJSON(postPath(postID), post); err != nil {
			return common.ErrPersistence(err)
		}
		return nil
	}
	return common.ErrNotFound("reply")
}

// SetPostLock locks or unlocks a post for new replies and edits
func SetPostLock(id uint64, locked bool) error {
	m := lockPost(id)
	m.Lock()
	defer m.Unlock()

	var post common.Post
	if err := loadPost(id, &post); err != nil {
		return err
	}
	post.Locked = locked
	if err := saveJSON(postPath(id), post); err != nil {
		return common.ErrPersistence(err)
	}
	return nil
}

// DeleteReply removes a reply from a post. The caller must be a
// moderator or the recorded author of the reply. Deleting reply 0
// deletes the whole post: it is delisted from its topic, its file is
// moved to the deleted area and it is removed from the author's post
// list. Surviving reply ids are never renumbered.
func DeleteReply(postID, replyID uint64, caller auth.Ident) error {
	m := lockPost(postID)
	m.Lock()
	defer m.Unlock()

	var post common.Post
	if err := loadPost(postID, &post); err != nil {
		return err
	}

	idx := -1
	for i := range post.Replies {
		if post.Replies[i].ID == replyID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return common.ErrNotFound("reply")
	}

	author := post.Replies[idx].Author
	if caller.Role < auth.Moderator && caller.Username != author {
		return common.ErrNoPermissions
	}

	if replyID == 0 {
		return deletePost(postID, author)
	}

	post.Replies = append(post.Replies[:idx], post.Replies[idx+1:]...)
	if err := saveJSON(postPath(postID), post); err != nil {
		return common.ErrPersistence(err)
	}
	return nil
}

// deletePost cascades the deletion of an origin reply. Called with the
// post lock held.
func deletePost(id uint64, author string) error {
	err := mutateForum(func(f *common.ForumTree) error {
		for bi := range f.Boards {
			for ti := range f.Boards[bi].Topics {
				t := &f.Boards[bi].Topics[ti]
				for _, list := range []*[]uint64{&t.Posts, &t.Stickied} {
					for i := range *list {
						if (*list)[i] == id {
							*list = append((*list)[:i], (*list)[i+1:]...)
							return nil
						}
					}
				}
			}
		}
		return common.ErrNotFound("post listing")
	})
	if err != nil {
		return err
	}

	// Delisted but still on disk is a reportable failure state
	if err := os.Rename(postPath(id), deletedPostPath(id)); err != nil {
		return common.ErrPersistence(err)
	}

	return mutateUsers(func(us *[]common.User) error {
		u := findUser(*us, author)
		if u == nil {
			return nil
		}
		for i := range u.Posts {
			if u.Posts[i] == id {
				u.Posts = append(u.Posts[:i], u.Posts[i+1:]...)
				break
			}
		}
		return nil
	})
}
