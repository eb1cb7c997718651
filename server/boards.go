package server

import (
	"fmt"
	"net/http"

	"github.com/rthearn/ivory/auth"
	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/db"
)

func boardPage(board string) string {
	return fmt.Sprintf("/board?board=%s", board)
}

func topicPage(board, topic string) string {
	return fmt.Sprintf("/board/topic?board=%s&topic=%s", board, topic)
}

// Create a new top-level board
func createBoard(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		name := r.FormValue("board_name")
		if name == "" {
			return common.ErrInvalidInput("a board needs a name")
		}
		return db.CreateBoard(name, r.FormValue("board_desc"))
	}()
	if err != nil {
		redirectError(w, r, "/admin/boards", err)
		return
	}
	redirect(w, r, "/admin/boards")
}

// Delete a board and its topic listings
func deleteBoard(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		return db.DeleteBoard(r.FormValue("board"))
	}()
	if err != nil {
		redirectError(w, r, "/admin/boards", err)
		return
	}
	redirect(w, r, "/admin/boards")
}

// Create a new topic on a board
func createTopic(w http.ResponseWriter, r *http.Request) {
	board := r.FormValue("board")
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		name := r.FormValue("topicname")
		if name == "" {
			return common.ErrInvalidInput("a topic needs a name")
		}
		return db.CreateTopic(board, name, r.FormValue("topicdesc"))
	}()
	if err != nil {
		redirectError(w, r, boardPage(board), err)
		return
	}
	redirect(w, r, boardPage(board))
}

// Delete a topic and its post listings from a board
func deleteTopic(w http.ResponseWriter, r *http.Request) {
	board := r.FormValue("board")
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		return db.DeleteTopic(board, r.FormValue("topic"))
	}()
	if err != nil {
		redirectError(w, r, boardPage(board), err)
		return
	}
	redirect(w, r, boardPage(board))
}

// Lock or unlock a topic for new posts
func setTopicLock(lock bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board := r.FormValue("board")
		topic := r.FormValue("topic")
		err := func() (err error) {
			if _, err = assertRole(r, auth.Moderator); err != nil {
				return
			}
			return db.SetTopicLock(board, topic, lock)
		}()
		if err != nil {
			redirectError(w, r, topicPage(board, topic), err)
			return
		}
		redirect(w, r, topicPage(board, topic))
	}
}

// Move a post between the regular and stickied listings of its topic
func setSticky(sticky bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board := r.FormValue("board")
		topic := r.FormValue("topic")
		err := func() (err error) {
			if _, err = assertRole(r, auth.Moderator); err != nil {
				return
			}
			id, err := formUint(r, "post")
			if err != nil {
				return
			}
			return db.SetSticky(board, topic, id, sticky)
		}()
		if err != nil {
			redirectError(w, r, topicPage(board, topic), err)
			return
		}
		redirect(w, r, topicPage(board, topic))
	}
}
