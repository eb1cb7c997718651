package server

import (
	"net/http"
	"strings"

	"github.com/rthearn/ivory/auth"
	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/db"
)

// Set the role flags of an account
func manageUser(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("user")
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		return db.SetUserFlags(
			name,
			r.FormValue("verified") == "on",
			r.FormValue("moderator") == "on",
			r.FormValue("admin") == "on",
		)
	}()
	if err != nil {
		redirectError(w, r, "/admin/users", err)
		return
	}
	redirect(w, r, "/admin/manageuser?user="+name)
}

// Delete an account. Content authored by it is kept and resolves to a
// deletion placeholder on display.
func deleteUser(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		name := r.FormValue("user")
		auth.Sessions.RevokeUser(name)
		return db.DeleteUser(name)
	}()
	if err != nil {
		redirectError(w, r, "/admin/users", err)
		return
	}
	redirect(w, r, "/admin/users")
}

// Publish a news item
func createNews(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		who, err := assertRole(r, auth.Admin)
		if err != nil {
			return
		}
		title := r.FormValue("newstitle")
		body := r.FormValue("newsbody")
		if title == "" || body == "" {
			return common.ErrInvalidInput(
				"a news post needs a title and a body")
		}
		_, err = db.CreateNews(title, who.Username, body)
		return
	}()
	if err != nil {
		redirectError(w, r, "/admin/news", err)
		return
	}
	redirect(w, r, "/news")
}

// Overwrite the title and body of a news item
func editNews(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		id, err := formUint(r, "post")
		if err != nil {
			return
		}
		title := r.FormValue("newstitle")
		body := r.FormValue("newsbody")
		if title == "" || body == "" {
			return common.ErrInvalidInput(
				"a news post needs a title and a body")
		}
		return db.EditNews(id, title, body)
	}()
	if err != nil {
		redirectError(w, r, "/admin/news", err)
		return
	}
	redirect(w, r, "/news")
}

// Remove a news item
func deleteNews(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		id, err := formUint(r, "post")
		if err != nil {
			return
		}
		return db.DeleteNews(id)
	}()
	if err != nil {
		redirectError(w, r, "/admin/news", err)
		return
	}
	redirect(w, r, "/news")
}

// Read a badge definition from the form
func formBadge(r *http.Request) (b common.Badge, err error) {
	b = common.Badge{
		Name:        r.FormValue("badgename"),
		Image:       r.FormValue("badgeimage"),
		Description: r.FormValue("badgedesc"),
	}
	if b.Name == "" || b.Image == "" {
		err = common.ErrInvalidInput("a badge needs a name and an image")
	}
	return
}

// Define a new badge
func createBadge(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		b, err := formBadge(r)
		if err != nil {
			return
		}
		return db.CreateBadge(b)
	}()
	if err != nil {
		redirectError(w, r, "/admin/badges", err)
		return
	}
	redirect(w, r, "/badges")
}

// Overwrite the badge stored under the "name" form value
func editBadge(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		b, err := formBadge(r)
		if err != nil {
			return
		}
		return db.EditBadge(r.FormValue("name"), b)
	}()
	if err != nil {
		redirectError(w, r, "/admin/badges", err)
		return
	}
	redirect(w, r, "/badges")
}

// Remove a badge definition
func deleteBadge(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}
		return db.DeleteBadge(r.FormValue("name"))
	}()
	if err != nil {
		redirectError(w, r, "/admin/badges", err)
		return
	}
	redirect(w, r, "/badges")
}

// Replace the badge set of an account with a comma-separated list
func manageBadges(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("user")
	err := func() (err error) {
		if _, err = assertRole(r, auth.Admin); err != nil {
			return
		}

		badges := []string{}
		if list := r.FormValue("badgelist"); list != "" {
			for _, b := range strings.Split(list, ",") {
				badges = append(badges, strings.TrimSpace(b))
			}
		}
		return db.SetUserBadges(name, badges)
	}()
	if err != nil {
		redirectError(w, r, "/admin/users", err)
		return
	}
	redirect(w, r, "/admin/manageuser?user="+name)
}
