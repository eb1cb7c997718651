package db

import (
	"time"

	"github.com/rthearn/ivory/auth"
	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/config"
)

const (
	previewLength    = 60
	profileFeedLimit = 20
)

// AuthorCard is the displayable identity attached to a reply or a
// profile. Accounts that no longer exist resolve to a deletion
// placeholder instead of failing the whole page.
type AuthorCard struct {
	Username       string         `json:"username"`
	Deleted        bool           `json:"deleted"`
	Role           string         `json:"role"`
	Colour         string         `json:"colour"`
	Description    string         `json:"description"`
	ProfilePicture string         `json:"profile_picture"`
	Badges         []common.Badge `json:"badges"`
}

// ReplyView couples a reply with its resolved author card
type ReplyView struct {
	common.Reply
	Card AuthorCard `json:"author_card"`
}

// PostView is one page of a post with author cards resolved for
// rendering
type PostView struct {
	ID      uint64      `json:"id"`
	Title   string      `json:"name"`
	Created time.Time   `json:"date"`
	Locked  bool        `json:"locked"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	Replies []ReplyView `json:"replies"`
}

// PostPreview is a single row in a topic listing or a profile feed
type PostPreview struct {
	ID       uint64    `json:"id"`
	Title    string    `json:"name"`
	Author   string    `json:"author"`
	Preview  string    `json:"preview"`
	Created  time.Time `json:"date"`
	Replies  int       `json:"replies"`
	Stickied bool      `json:"stickied"`
	Locked   bool      `json:"locked"`
}

// TopicView is one page of a topic listing. Stickied posts are shown on
// the first page only, above the regular listing, and do not count
// against the page size.
type TopicView struct {
	Board       string        `json:"board"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Locked      bool          `json:"locked"`
	Page        int           `json:"page"`
	Pages       int           `json:"pages"`
	Posts       []PostPreview `json:"posts"`
}

// ProfileView is a user profile page with badge definitions resolved and
// recent activity feeds attached
type ProfileView struct {
	Username       string          `json:"username"`
	Role           string          `json:"role"`
	Colour         string          `json:"colour"`
	Description    string          `json:"description"`
	About          string          `json:"about"`
	ProfilePicture string          `json:"profile_picture"`
	Contacts       common.Contacts `json:"contacts"`
	Badges         []common.Badge  `json:"badges"`
	PostCount      int             `json:"post_count"`
	ReplyCount     int             `json:"reply_count"`
	Created        time.Time       `json:"creationDate"`
	Posts          []PostPreview   `json:"posts"`
	Replies        []PostPreview   `json:"replies"`
}

// UserSummary is a single row in the user directory
type UserSummary struct {
	Username       string `json:"username"`
	Role           string `json:"role"`
	Colour         string `json:"colour"`
	Description    string `json:"description"`
	ProfilePicture string `json:"profile_picture"`
	PostCount      int    `json:"post_count"`
	ReplyCount     int    `json:"reply_count"`
}

// DirectoryView is the user directory page. TotalPosts counts every post
// ever created, deleted ones included.
type DirectoryView struct {
	TotalPosts uint64        `json:"total_posts"`
	Users      []UserSummary `json:"users"`
}

func pageCount(length, size int) int {
	if length == 0 {
		return 1
	}
	return (length + size - 1) / size
}

func roleColour(role auth.Role) string {
	conf := config.Get()
	switch role {
	case auth.Admin:
		return conf.AdminColour
	case auth.Moderator:
		return conf.ModeratorColour
	default:
		return conf.UserColour
	}
}

func resolveBadges(f *common.ForumTree, names []string) []common.Badge {
	badges := []common.Badge{}
	for _, name := range names {
		for _, b := range f.Badges {
			if b.Name == name {
				badges = append(badges, b)
				break
			}
		}
	}
	return badges
}

// authorCard resolves a username to its display card. Must be called
// without usersMu or forumMu held.
func authorCard(name string) (card AuthorCard) {
	usersMu.RLock()
	u := findUser(users, name)
	if u != nil {
		card.Username = u.Username
		card.Role = auth.RoleOf(u.Moderator, u.Admin).String()
		card.Colour = roleColour(auth.RoleOf(u.Moderator, u.Admin))
		card.Description = u.Description
		card.ProfilePicture = u.ProfilePicture
		badgeNames := append([]string(nil), u.Badges...)
		usersMu.RUnlock()

		forumMu.RLock()
		card.Badges = resolveBadges(&forum, badgeNames)
		forumMu.RUnlock()
		return
	}
	usersMu.RUnlock()

	card.Username = common.DeletedUserName
	card.Deleted = true
	card.Role = auth.Member.String()
	card.Colour = roleColour(auth.Member)
	card.Description = common.DeletedUserDescription
	card.ProfilePicture = config.Get().DefaultProfilePicture
	card.Badges = []common.Badge{}
	return
}

func preview(body string) string {
	r := []rune(body)
	if len(r) <= previewLength {
		return body
	}
	return string(r[:previewLength]) + "..."
}

// postPreview builds a listing row from the post file. Missing files
// yield a not found error; the caller decides whether that tears down
// the page.
func postPreview(id uint64, stickied bool) (p PostPreview, err error) {
	post, err := GetPost(id)
	if err != nil {
		return
	}
	p = PostPreview{
		ID:       id,
		Title:    post.Title,
		Created:  post.Created,
		Replies:  len(post.Replies),
		Stickied: stickied,
		Locked:   post.Locked,
	}
	if len(post.Replies) != 0 {
		p.Author = post.Replies[0].Author
		p.Preview = preview(post.Replies[0].Body)
	}
	return
}

// GetTopicPage assembles one page of a topic listing. Post ids whose
// files have gone missing are skipped rather than failing the page.
func GetTopicPage(board, topic string, page int) (view TopicView, err error) {
	t, err := GetTopic(board, topic)
	if err != nil {
		return
	}

	size := config.Get().PostsPerPage
	lo, hi, err := pageBounds(len(t.Posts), page, size)
	if err != nil {
		return
	}

	view = TopicView{
		Board:       board,
		Name:        t.Name,
		Description: t.Description,
		Locked:      t.Locked,
		Page:        page,
		Pages:       pageCount(len(t.Posts), size),
		Posts:       []PostPreview{},
	}

	if page == 1 {
		for _, id := range t.Stickied {
			p, err := postPreview(id, true)
			if err != nil {
				continue
			}
			view.Posts = append(view.Posts, p)
		}
	}
	for _, id := range t.Posts[lo:hi] {
		p, err := postPreview(id, false)
		if err != nil {
			continue
		}
		view.Posts = append(view.Posts, p)
	}
	return
}

// GetPostView assembles one page of a post with author cards resolved
func GetPostView(id uint64, page int) (view PostView, err error) {
	post, err := GetPost(id)
	if err != nil {
		return
	}

	size := config.Get().RepliesPerPage
	lo, hi, err := pageBounds(len(post.Replies), page, size)
	if err != nil {
		return
	}

	view = PostView{
		ID:      post.ID,
		Title:   post.Title,
		Created: post.Created,
		Locked:  post.Locked,
		Page:    page,
		Pages:   pageCount(len(post.Replies), size),
		Replies: make([]ReplyView, 0, hi-lo),
	}
	for _, r := range post.Replies[lo:hi] {
		view.Replies = append(view.Replies, ReplyView{
			Reply: r,
			Card:  authorCard(r.Author),
		})
	}
	return
}

// GetProfile assembles a user profile page with recent activity feeds.
// Reply feed rows are deduplicated by post, keeping the most recent
// reply per post.
func GetProfile(name string) (view ProfileView, err error) {
	u, err := GetUser(name)
	if err != nil {
		return
	}

	role := auth.RoleOf(u.Moderator, u.Admin)
	view = ProfileView{
		Username:       u.Username,
		Role:           role.String(),
		Colour:         roleColour(role),
		Description:    u.Description,
		About:          u.About,
		ProfilePicture: u.ProfilePicture,
		Contacts:       u.Contacts,
		PostCount:      len(u.Posts),
		ReplyCount:     len(u.Replies),
		Created:        u.Created,
		Posts:          []PostPreview{},
		Replies:        []PostPreview{},
	}

	forumMu.RLock()
	view.Badges = resolveBadges(&forum, u.Badges)
	forumMu.RUnlock()

	for _, id := range u.Posts {
		if len(view.Posts) == profileFeedLimit {
			break
		}
		p, err := postPreview(id, false)
		if err != nil {
			continue
		}
		view.Posts = append(view.Posts, p)
	}

	seen := make(map[uint64]bool, profileFeedLimit)
	for _, ref := range u.Replies {
		if len(view.Replies) == profileFeedLimit {
			break
		}
		if seen[ref.Post] {
			continue
		}
		seen[ref.Post] = true
		p, err := postPreview(ref.Post, false)
		if err != nil {
			continue
		}
		view.Replies = append(view.Replies, p)
	}
	return
}

// GetDirectory assembles the user directory with the global post counter
func GetDirectory() (view DirectoryView, err error) {
	us, err := AllUsers()
	if err != nil {
		return
	}

	view.Users = make([]UserSummary, 0, len(us))
	for _, u := range us {
		role := auth.RoleOf(u.Moderator, u.Admin)
		view.Users = append(view.Users, UserSummary{
			Username:       u.Username,
			Role:           role.String(),
			Colour:         roleColour(role),
			Description:    u.Description,
			ProfilePicture: u.ProfilePicture,
			PostCount:      len(u.Posts),
			ReplyCount:     len(u.Replies),
		})
	}

	forumMu.RLock()
	view.TotalPosts = forum.PostIndex - firstPostID
	forumMu.RUnlock()
	return
}
