package server

import (
	"fmt"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/dimfeld/httptreemux"
	"github.com/go-playground/log"

	"github.com/rthearn/ivory/auth"
	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/db"
)

// Base set of HTTP headers for all dynamic responses
var vanillaHeaders = map[string]string{
	"X-Frame-Options": "sameorigin",
	"Cache-Control":   "no-cache",
	"Expires":         "Fri, 01 Jan 1990 00:00:00 GMT",
}

// Extract URL parameter from request context
func extractParam(r *http.Request, id string) string {
	return httptreemux.ContextParams(r.Context())[id]
}

// Extract and parse the page number from the query string. Missing
// numbers default to the first page.
func extractPage(r *http.Request) (int, error) {
	q := r.URL.Query().Get("page")
	if q == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(q)
	if err != nil {
		return 0, common.ErrInvalidInput("invalid page number")
	}
	return page, nil
}

// Log an error together with the request path and stack trace
func logError(r *http.Request, err interface{}) {
	log.Errorf("server: %s %s: %s\n%s", r.Method, r.URL.Path, err,
		debug.Stack())
}

// Text-only 404 response
func text404(w http.ResponseWriter) {
	http.Error(w, "404 not found", 404)
}

// Text-only 400 response
func text400(w http.ResponseWriter, err error) {
	http.Error(w, fmt.Sprintf("400 %s", err), 400)
}

// Text-only 500 response
func text500(w http.ResponseWriter, r *http.Request, err interface{}) {
	http.Error(w, fmt.Sprintf("500 %s", err), 500)
	logError(r, err)
}

// httpError writes an error to the client with its attached status code.
// Errors without one are treated as internal.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	code := 500
	if se, ok := err.(common.StatusError); ok {
		code = se.Code
	}
	http.Error(w, fmt.Sprintf("%d %s", code, err), code)
	if !common.CanIgnoreClientError(err) {
		logError(r, err)
	}
}

// redirect sends the client to a follow-up page after a completed
// mutation
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, 302)
}

// redirectError sends the client back to a sensible prior page with a
// human-readable error message in the query string
func redirectError(
	w http.ResponseWriter,
	r *http.Request,
	location string,
	err error,
) {
	sep := "?"
	if strings.Contains(location, "?") {
		sep = "&"
	}
	http.Redirect(w, r, location+sep+"err="+url.QueryEscape(err.Error()), 302)
	if !common.CanIgnoreClientError(err) {
		logError(r, err)
	}
}

// sessionToken extracts the bearer token from the session cookie, if any
func sessionToken(r *http.Request) string {
	c, err := r.Cookie("session")
	if err != nil {
		return ""
	}
	return c.Value
}

// ident resolves the identity of the request through the session cookie
func ident(r *http.Request) auth.Ident {
	return db.LookUpIdent(sessionToken(r))
}

// assertRole resolves the request identity and asserts it holds at least
// the passed privilege level
func assertRole(r *http.Request, min auth.Role) (auth.Ident, error) {
	who := ident(r)
	switch {
	case !who.LoggedIn:
		return who, common.ErrNotLoggedIn
	case who.Role < min:
		return who, common.ErrNoPermissions
	}
	return who, nil
}
