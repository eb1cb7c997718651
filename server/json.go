package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rthearn/ivory/config"
	"github.com/rthearn/ivory/db"
	"github.com/rthearn/ivory/util"
)

// Check if the etag the client provides in the "If-None-Match" header
// matches the generated etag. If yes, write 304 and return true.
func checkClientEtag(
	w http.ResponseWriter,
	r *http.Request,
	etag string,
) bool {
	if etag == r.Header.Get("If-None-Match") {
		w.WriteHeader(304)
		return true
	}
	return false
}

// Marshal input data to JSON and write to client
func serveJSON(
	w http.ResponseWriter,
	r *http.Request,
	etag string,
	data interface{},
) {
	buf, err := json.Marshal(data)
	if err != nil {
		text500(w, r, err)
		return
	}
	writeJSON(w, r, etag, buf)
}

// Write data as JSON to the client. If etag is "" generate a strong etag
// by hashing the resulting buffer and perform a check against the
// "If-None-Match" header. If etag is set, assume this check has already
// been done.
func writeJSON(
	w http.ResponseWriter,
	r *http.Request,
	etag string,
	buf []byte,
) {
	if etag == "" {
		etag = util.HashBuffer(buf)
	}
	if checkClientEtag(w, r, etag) {
		return
	}

	head := w.Header()
	for key, val := range vanillaHeaders {
		head.Set(key, val)
	}
	head.Set("ETag", etag)
	head.Set("Content-Type", "application/json")
	head.Set("Content-Length", strconv.Itoa(len(buf)))

	if _, err := w.Write(buf); err != nil {
		logError(r, err)
	}
}

// Serve public configuration information as JSON
func serveConfigs(w http.ResponseWriter, r *http.Request) {
	buf, etag := config.GetClient()
	writeJSON(w, r, etag, buf)
}

// Serve the board index as JSON
func serveBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := db.GetBoards()
	if err != nil {
		httpError(w, r, err)
		return
	}
	serveJSON(w, r, "", boards)
}

// Serve a single board with its topic listing as JSON
func serveBoard(w http.ResponseWriter, r *http.Request) {
	board, err := db.GetBoard(extractParam(r, "board"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	serveJSON(w, r, "", board)
}

// Serve one page of a topic's post listing as JSON
func serveTopic(w http.ResponseWriter, r *http.Request) {
	page, err := extractPage(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	view, err := db.GetTopicPage(
		extractParam(r, "board"),
		extractParam(r, "topic"),
		page,
	)
	if err != nil {
		httpError(w, r, err)
		return
	}
	serveJSON(w, r, "", view)
}

// Serve one page of a post with resolved author cards as JSON
func servePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(extractParam(r, "post"), 10, 64)
	if err != nil {
		text400(w, err)
		return
	}
	page, err := extractPage(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	view, err := db.GetPostView(id, page)
	if err != nil {
		httpError(w, r, err)
		return
	}
	serveJSON(w, r, "", view)
}

// Serve one page of news items as JSON
func serveNews(w http.ResponseWriter, r *http.Request) {
	page, err := extractPage(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	news, err := db.GetNewsPage(page)
	if err != nil {
		httpError(w, r, err)
		return
	}
	serveJSON(w, r, "", news)
}

// Serve the user directory as JSON
func serveUsers(w http.ResponseWriter, r *http.Request) {
	view, err := db.GetDirectory()
	if err != nil {
		httpError(w, r, err)
		return
	}
	serveJSON(w, r, "", view)
}

// Serve a single user profile as JSON
func serveUser(w http.ResponseWriter, r *http.Request) {
	view, err := db.GetProfile(extractParam(r, "user"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	serveJSON(w, r, "", view)
}

// Serve all badge definitions as JSON
func serveBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := db.GetBadges()
	if err != nil {
		httpError(w, r, err)
		return
	}
	serveJSON(w, r, "", badges)
}

// Serve a single badge definition as JSON
func serveBadge(w http.ResponseWriter, r *http.Request) {
	badge, err := db.GetBadge(extractParam(r, "name"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	serveJSON(w, r, "", badge)
}
