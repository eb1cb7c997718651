package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rthearn/ivory/auth"
	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/db"
)

// Parse a numeric form value
func formUint(r *http.Request, field string) (uint64, error) {
	n, err := strconv.ParseUint(r.FormValue(field), 10, 64)
	if err != nil {
		return 0, common.ErrInvalidInput("invalid " + field + " id")
	}
	return n, nil
}

// Create a new post in a topic
func createPost(w http.ResponseWriter, r *http.Request) {
	board := r.FormValue("board")
	topic := r.FormValue("topic")

	var id uint64
	err := func() (err error) {
		who, err := assertRole(r, auth.Member)
		if err != nil {
			return
		}

		title := r.FormValue("posttitle")
		body := r.FormValue("postbody")
		switch {
		case title == "":
			return common.ErrInvalidInput("a post needs a title")
		case body == "":
			return common.ErrInvalidInput("a post needs a body")
		}

		id, err = db.InsertPost(board, topic, title, who.Username, body)
		return
	}()
	if err != nil {
		redirectError(w, r, topicPage(board, topic), err)
		return
	}
	redirect(w, r, fmt.Sprintf("/post/view?id=%d", id))
}

// Append a reply to a post
func createReply(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		who, err := assertRole(r, auth.Member)
		if err != nil {
			return
		}
		id, err := formUint(r, "post")
		if err != nil {
			return
		}
		body := r.FormValue("replybody")
		if body == "" {
			return common.ErrInvalidInput("a reply needs a body")
		}

		_, err = db.Reply(id, who.Username, body)
		return
	}()
	if err != nil {
		redirectError(w, r, "/", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/post/view?id=%s", r.FormValue("post")))
}

// Overwrite the body of the caller's own reply
func editReply(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		who, err := assertRole(r, auth.Member)
		if err != nil {
			return
		}
		post, err := formUint(r, "post")
		if err != nil {
			return
		}
		reply, err := formUint(r, "reply")
		if err != nil {
			return
		}
		body := r.FormValue("replybody")
		if body == "" {
			return common.ErrInvalidInput("a reply needs a body")
		}

		return db.EditReply(post, reply, who.Username, body)
	}()
	if err != nil {
		redirectError(w, r, "/", err)
		return
	}
	redirect(w, r, fmt.Sprintf("/post/view?id=%s", r.FormValue("post")))
}

// Delete a reply. Deleting reply 0 deletes the whole post.
func deleteReply(w http.ResponseWriter, r *http.Request) {
	var reply uint64
	err := func() (err error) {
		who, err := assertRole(r, auth.Member)
		if err != nil {
			return
		}
		post, err := formUint(r, "post")
		if err != nil {
			return
		}
		reply, err = formUint(r, "reply")
		if err != nil {
			return
		}

		return db.DeleteReply(post, reply, who)
	}()
	if err != nil {
		redirectError(w, r, "/", err)
		return
	}
	if reply == 0 {
		redirect(w, r, "/")
		return
	}
	redirect(w, r, fmt.Sprintf("/post/view?id=%s", r.FormValue("post")))
}

// Lock or unlock a post for new replies and edits
func setPostLock(lock bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := func() (err error) {
			if _, err = assertRole(r, auth.Moderator); err != nil {
				return
			}
			id, err := formUint(r, "post")
			if err != nil {
				return
			}
			return db.SetPostLock(id, lock)
		}()
		if err != nil {
			redirectError(w, r, "/", err)
			return
		}
		redirect(w, r, fmt.Sprintf("/post/view?id=%s", r.FormValue("post")))
	}
}
