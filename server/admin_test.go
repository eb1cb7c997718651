package server

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rthearn/ivory/db"
)

func TestAdminOnlyGuards(t *testing.T) {
	setupServer(t)
	memberToken := registerAccount(t, "pleb", true, false, false)

	paths := [...]string{
		"/api/createboard",
		"/api/deleteboard",
		"/api/createtopic",
		"/api/deletetopic",
		"/api/createnews",
		"/api/editnews",
		"/api/deletenews",
		"/api/createbadge",
		"/api/editbadge",
		"/api/deletebadge",
		"/api/managebadges",
		"/api/manageuser",
		"/api/deleteuser",
	}
	for _, path := range paths {
		path := path
		t.Run(path, func(t *testing.T) {
			req := newForm(path, url.Values{})
			setSession(req, memberToken)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assertRedirectError(t, rec)
		})
	}
}

func TestModeratorGuards(t *testing.T) {
	setupServer(t)
	memberToken := registerAccount(t, "pleb", true, false, false)

	for _, path := range [...]string{
		"/api/locktopic", "/api/sticky", "/api/lockpost",
	} {
		path := path
		t.Run(path, func(t *testing.T) {
			req := newForm(path, url.Values{})
			setSession(req, memberToken)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assertRedirectError(t, rec)
		})
	}
}

func TestManageUser(t *testing.T) {
	setupServer(t)
	adminToken := registerAccount(t, "root", true, false, true)
	registerAccount(t, "pleb", false, false, false)

	req := newForm("/api/manageuser", url.Values{
		"user":      {"pleb"},
		"verified":  {"on"},
		"moderator": {"on"},
	})
	setSession(req, adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assertRedirect(t, rec, "/admin/manageuser?user=pleb")

	u, err := db.GetUser("pleb")
	if err != nil {
		t.Fatal(err)
	}
	if !u.Verified || !u.Moderator || u.Admin {
		t.Fatalf("flags not applied: %#v", u)
	}
}

func TestDeleteUser(t *testing.T) {
	setupServer(t)
	adminToken := registerAccount(t, "root", true, false, true)
	victimToken := registerAccount(t, "victim", true, false, false)

	req := newForm("/api/deleteuser", url.Values{"user": {"victim"}})
	setSession(req, adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assertRedirect(t, rec, "/admin/users")

	if _, err := db.GetUser("victim"); err == nil {
		t.Fatal("account still present")
	}
	if ident := db.LookUpIdent(victimToken); ident.LoggedIn {
		t.Fatal("deleted account still holds a session")
	}
}

func TestNewsHandlers(t *testing.T) {
	setupServer(t)
	adminToken := registerAccount(t, "root", true, false, true)

	post := func(path string, form url.Values) *httptest.ResponseRecorder {
		req := newForm(path, form)
		setSession(req, adminToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("create", func(t *testing.T) {
		rec := post("/api/createnews", url.Values{
			"newstitle": {"launch"},
			"newsbody":  {"we are live"},
		})
		assertRedirect(t, rec, "/news")
	})

	t.Run("missing body rejected", func(t *testing.T) {
		rec := post("/api/createnews", url.Values{
			"newstitle": {"empty"},
		})
		assertRedirectError(t, rec)
	})

	t.Run("edit", func(t *testing.T) {
		rec := post("/api/editnews", url.Values{
			"post":      {"0"},
			"newstitle": {"launch day"},
			"newsbody":  {"we are really live"},
		})
		assertRedirect(t, rec, "/news")

		news, err := db.GetNewsPage(1)
		if err != nil {
			t.Fatal(err)
		}
		if news[0].Title != "launch day" {
			t.Fatalf("edit not applied: %#v", news[0])
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := post("/api/deletenews", url.Values{"post": {"0"}})
		assertRedirect(t, rec, "/news")
	})
}

func TestBadgeHandlers(t *testing.T) {
	setupServer(t)
	adminToken := registerAccount(t, "root", true, false, true)
	registerAccount(t, "ada", true, false, false)

	post := func(path string, form url.Values) *httptest.ResponseRecorder {
		req := newForm(path, form)
		setSession(req, adminToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("create", func(t *testing.T) {
		rec := post("/api/createbadge", url.Values{
			"badgename":  {"founder"},
			"badgeimage": {"founder.png"},
			"badgedesc":  {"here from the start"},
		})
		assertRedirect(t, rec, "/badges")
	})

	t.Run("assign", func(t *testing.T) {
		rec := post("/api/managebadges", url.Values{
			"user":      {"ada"},
			"badgelist": {"founder"},
		})
		assertRedirect(t, rec, "/admin/manageuser?user=ada")

		u, err := db.GetUser("ada")
		if err != nil {
			t.Fatal(err)
		}
		if len(u.Badges) != 1 || u.Badges[0] != "founder" {
			t.Fatalf("badges not applied: %#v", u.Badges)
		}
	})

	t.Run("assign undefined rejected", func(t *testing.T) {
		rec := post("/api/managebadges", url.Values{
			"user":      {"ada"},
			"badgelist": {"founder,ghost"},
		})
		assertRedirectError(t, rec)
	})

	t.Run("edit", func(t *testing.T) {
		rec := post("/api/editbadge", url.Values{
			"name":       {"founder"},
			"badgename":  {"pioneer"},
			"badgeimage": {"pioneer.png"},
			"badgedesc":  {"renamed"},
		})
		assertRedirect(t, rec, "/badges")
	})

	t.Run("delete", func(t *testing.T) {
		rec := post("/api/deletebadge", url.Values{"name": {"pioneer"}})
		assertRedirect(t, rec, "/badges")
	})
}

func TestBoardHandlers(t *testing.T) {
	setupServer(t)
	adminToken := registerAccount(t, "root", true, false, true)

	post := func(path string, form url.Values) *httptest.ResponseRecorder {
		req := newForm(path, form)
		setSession(req, adminToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("create board", func(t *testing.T) {
		rec := post("/api/createboard", url.Values{
			"board_name": {"general"},
			"board_desc": {"general discussion"},
		})
		assertRedirect(t, rec, "/admin/boards")
	})

	t.Run("create topic", func(t *testing.T) {
		rec := post("/api/createtopic", url.Values{
			"board":     {"general"},
			"topicname": {"chat"},
			"topicdesc": {"off topic"},
		})
		assertRedirect(t, rec, "/board?board=general")
	})

	t.Run("lock topic", func(t *testing.T) {
		rec := post("/api/locktopic", url.Values{
			"board": {"general"},
			"topic": {"chat"},
		})
		assertRedirect(t, rec, "/board/topic?board=general&topic=chat")

		topic, err := db.GetTopic("general", "chat")
		if err != nil {
			t.Fatal(err)
		}
		if !topic.Locked {
			t.Fatal("topic not locked")
		}
	})

	t.Run("sticky", func(t *testing.T) {
		rec := post("/api/unlocktopic", url.Values{
			"board": {"general"},
			"topic": {"chat"},
		})
		assertRedirect(t, rec, "/board/topic?board=general&topic=chat")

		id, err := db.InsertPost("general", "chat", "rules", "root", "read")
		if err != nil {
			t.Fatal(err)
		}
		rec = post("/api/sticky", url.Values{
			"board": {"general"},
			"topic": {"chat"},
			"post":  {"1000000"},
		})
		assertRedirect(t, rec, "/board/topic?board=general&topic=chat")

		topic, err := db.GetTopic("general", "chat")
		if err != nil {
			t.Fatal(err)
		}
		if len(topic.Stickied) != 1 || topic.Stickied[0] != id {
			t.Fatalf("post not stickied: %#v", topic)
		}
	})

	t.Run("delete topic and board", func(t *testing.T) {
		rec := post("/api/deletetopic", url.Values{
			"board": {"general"},
			"topic": {"chat"},
		})
		assertRedirect(t, rec, "/board?board=general")

		rec = post("/api/deleteboard", url.Values{"board": {"general"}})
		assertRedirect(t, rec, "/admin/boards")
	})
}
