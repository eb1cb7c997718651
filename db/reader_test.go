package db

import (
	"strings"
	"testing"

	"github.com/rthearn/ivory/common"
	. "github.com/rthearn/ivory/test"
)

func TestGetTopicPage(t *testing.T) {
	id := setupThread(t)

	long, err := InsertPost("general", "chat", "long", "ada",
		strings.Repeat("a", 100))
	if err != nil {
		t.Fatal(err)
	}
	if err := SetSticky("general", "chat", id, true); err != nil {
		t.Fatal(err)
	}

	view, err := GetTopicPage("general", "chat", 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(view.Posts) != 2 {
		t.Fatalf("unexpected listing: %#v", view.Posts)
	}

	t.Run("stickied listed first", func(t *testing.T) {
		if view.Posts[0].ID != id || !view.Posts[0].Stickied {
			t.Fatalf("unexpected first row: %#v", view.Posts[0])
		}
		if view.Posts[1].ID != long || view.Posts[1].Stickied {
			t.Fatalf("unexpected second row: %#v", view.Posts[1])
		}
	})

	t.Run("preview truncated", func(t *testing.T) {
		AssertDeepEquals(t, view.Posts[0].Preview, "first post")
		AssertDeepEquals(t, view.Posts[1].Preview,
			strings.Repeat("a", 60)+"...")
	})

	t.Run("page out of range", func(t *testing.T) {
		_, err := GetTopicPage("general", "chat", 5)
		if err != common.ErrPageOutOfRange {
			UnexpectedError(t, err)
		}
	})

	t.Run("empty topic has one page", func(t *testing.T) {
		if err := CreateTopic("general", "void", ""); err != nil {
			t.Fatal(err)
		}
		view, err := GetTopicPage("general", "void", 1)
		if err != nil {
			t.Fatal(err)
		}
		AssertDeepEquals(t, view.Pages, 1)
		AssertDeepEquals(t, view.Posts, []PostPreview{})
	})
}

func TestGetPostView(t *testing.T) {
	id := setupThread(t)

	if err := SetUserFlags("ada", true, false, true); err != nil {
		t.Fatal(err)
	}
	if _, err := Reply(id, "ghost", "from a deleted account"); err != nil {
		t.Fatal(err)
	}

	view, err := GetPostView(id, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Replies) != 2 {
		t.Fatalf("unexpected replies: %#v", view.Replies)
	}

	t.Run("author card resolved", func(t *testing.T) {
		card := view.Replies[0].Card
		AssertDeepEquals(t, card.Username, "ada")
		AssertDeepEquals(t, card.Role, "Admin")
		AssertDeepEquals(t, card.Deleted, false)
	})

	t.Run("missing author gets placeholder", func(t *testing.T) {
		card := view.Replies[1].Card
		AssertDeepEquals(t, card.Username, common.DeletedUserName)
		AssertDeepEquals(t, card.Deleted, true)
	})
}

func TestGetProfile(t *testing.T) {
	id := setupThread(t)

	badge := common.Badge{Name: "founder", Image: "founder.png"}
	if err := CreateBadge(badge); err != nil {
		t.Fatal(err)
	}
	if err := SetUserBadges("ada", []string{"founder"}); err != nil {
		t.Fatal(err)
	}
	// Two replies to the same post collapse into one feed row
	for _, body := range []string{"second", "third"} {
		if _, err := Reply(id, "ada", body); err != nil {
			t.Fatal(err)
		}
	}

	view, err := GetProfile("ada")
	if err != nil {
		t.Fatal(err)
	}
	AssertDeepEquals(t, view.Badges, []common.Badge{badge})
	AssertDeepEquals(t, view.PostCount, 1)
	AssertDeepEquals(t, view.ReplyCount, 2)
	if len(view.Replies) != 1 || view.Replies[0].ID != id {
		t.Fatalf("reply feed not deduplicated: %#v", view.Replies)
	}
}

func TestGetDirectory(t *testing.T) {
	setupThread(t)

	view, err := GetDirectory()
	if err != nil {
		t.Fatal(err)
	}
	AssertDeepEquals(t, view.TotalPosts, uint64(1))
	if len(view.Users) != 1 || view.Users[0].Username != "ada" {
		t.Fatalf("unexpected directory: %#v", view.Users)
	}
	AssertDeepEquals(t, view.Users[0].PostCount, 1)
}
