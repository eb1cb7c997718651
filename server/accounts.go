package server

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"

	"github.com/rthearn/ivory/auth"
	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/config"
	"github.com/rthearn/ivory/db"
)

// Extensions accepted for profile picture URLs
var pictureExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".png":  true,
}

func isAlphaNumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Set the session cookie on a successful login
func commitLogin(w http.ResponseWriter, token string) {
	expires := time.Now().
		Add(time.Duration(config.Get().SessionExpiry) * time.Hour * 24)
	http.SetCookie(w, &http.Cookie{
		Name:    "session",
		Value:   token,
		Path:    "/",
		Expires: expires,
	})
}

// Log into a registered user account
func login(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		err = auth.VerifyCaptcha(r.FormValue("g-recaptcha-response"))
		if err != nil {
			return
		}

		name := r.FormValue("username")
		hash, verified, err := db.GetLoginHash(name)
		if err != nil {
			if _, ok := err.(common.StatusError); ok {
				return common.ErrInvalidCreds
			}
			return
		}
		if !verified {
			return common.ErrAccessDenied(
				"this account has not been verified yet")
		}

		switch err = auth.BcryptCompare(r.FormValue("password"), hash); err {
		case nil:
		case bcrypt.ErrMismatchedHashAndPassword:
			return common.ErrInvalidCreds
		default:
			return
		}

		token, err := auth.Sessions.Issue(name)
		if err != nil {
			return
		}
		commitLogin(w, token)
		return
	}()
	if err != nil {
		redirectError(w, r, "/login", err)
		return
	}
	redirect(w, r, "/")
}

// Register a new user account. The account stays unverified until an
// administrator flips the flag.
func signup(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		err = auth.VerifyCaptcha(r.FormValue("g-recaptcha-response"))
		if err != nil {
			return
		}

		name := r.FormValue("username")
		password := r.FormValue("password")
		email := r.FormValue("email")
		switch {
		case password != r.FormValue("password_repeat"):
			return common.ErrInvalidInput("passwords do not match")
		case name == "" || len(name) > common.MaxLenUserID:
			return common.ErrInvalidInput(
				"username must be 1 to 30 characters long")
		case !isAlphaNumeric(name):
			return common.ErrInvalidInput(
				"username may only contain letters and numbers")
		case len(password) > common.MaxLenPassword:
			return common.ErrTooLong("password")
		}
		if err = checkmail.ValidateFormat(email); err != nil {
			return common.ErrInvalidInput("invalid email address")
		}

		hash, err := auth.BcryptHash(password, 10)
		if err != nil {
			return
		}

		conf := config.Get()
		err = db.RegisterUser(common.User{
			Username:       name,
			Hash:           hash,
			Email:          email,
			Description:    conf.DefaultDescription,
			About:          conf.DefaultAbout,
			ProfilePicture: conf.DefaultProfilePicture,
			Posts:          []uint64{},
			Replies:        []common.ReplyRef{},
			Badges:         []string{},
			Created:        time.Now().UTC(),
		})
		if err == db.ErrUserNameTaken {
			err = common.ErrInvalidInput(err.Error())
		}
		return
	}()
	if err != nil {
		redirectError(w, r, "/register", err)
		return
	}
	redirect(w, r, "/register-done")
}

// Log out the user and revoke the active session
func logout(w http.ResponseWriter, r *http.Request) {
	auth.Sessions.Revoke(sessionToken(r))
	http.SetCookie(w, &http.Cookie{
		Name:   "session",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	redirect(w, r, "/")
}

// Overwrite the user-editable profile fields of the logged in account
func editProfile(w http.ResponseWriter, r *http.Request) {
	err := func() (err error) {
		who, err := assertRole(r, auth.Member)
		if err != nil {
			return
		}

		picture := r.FormValue("profile_picture")
		if picture != "" {
			ext := strings.ToLower(path.Ext(picture))
			if !pictureExtensions[ext] {
				return common.ErrInvalidInput(
					"profile picture must be a jpg, gif or png URL")
			}
		}

		p := common.Profile{
			Description:    r.FormValue("status"),
			About:          r.FormValue("description"),
			ProfilePicture: picture,
			Contacts: common.Contacts{
				Discord: r.FormValue("discord"),
				Email:   r.FormValue("email"),
				Reddit:  r.FormValue("reddit"),
				Twitter: r.FormValue("twitter"),
				YouTube: r.FormValue("youtube"),
			},
		}
		switch {
		case len(p.Description) > common.MaxLenStatus:
			return common.ErrTooLong("status")
		case len(p.About) > common.MaxLenAbout:
			return common.ErrTooLong("about section")
		case len(p.Contacts.Discord) > common.MaxLenContact,
			len(p.Contacts.Email) > common.MaxLenContact,
			len(p.Contacts.Reddit) > common.MaxLenContact,
			len(p.Contacts.Twitter) > common.MaxLenContact,
			len(p.Contacts.YouTube) > common.MaxLenContact:
			return common.ErrTooLong("contact handle")
		}

		return db.UpdateProfile(who.Username, p)
	}()
	if err != nil {
		redirectError(w, r, "/settings", err)
		return
	}
	redirect(w, r, "/settings")
}
