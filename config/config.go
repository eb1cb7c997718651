// Package config stores and exports the configuration for server-side
// use and the public availability JSON struct, which includes a small
// subset of the server configuration.
package config

import (
	"encoding/json"
	"sync"

	"github.com/rthearn/ivory/util"
)

var (
	// Ensures no reads happen, while the configuration is reloading
	mu sync.RWMutex

	// Contains currently loaded global server configuration
	global *Configs

	// JSON of client-accessible configuration
	clientJSON []byte

	// Hash of the public configs. Used for etagging.
	hash string

	// Defaults contains the default server configuration values
	Defaults = Configs{
		Public: Public{
			Name:            "ivory",
			Title:           "ivory forum",
			WelcomeHeader:   "Welcome!",
			UserColour:      "#b0b0b0",
			ModeratorColour: "#30a040",
			AdminColour:     "#c03030",
		},
		Address:            ":8000",
		DataDir:            ".",
		SessionExpiry:      30,
		NewsPerPage:        10,
		PostsPerPage:       10,
		RepliesPerPage:     10,
		DefaultDescription: "A new user.",
		DefaultAbout:       "",
	}
)

// Configs stores the global server configuration
type Configs struct {
	Public
	Address               string `json:"address"`
	DataDir               string `json:"data_dir"`
	EnableGzip            bool   `json:"gzip"`
	CaptchaSecret         string `json:"captcha_secret"`
	SessionExpiry         uint   `json:"session_expiry"`
	NewsPerPage           int    `json:"news_per_page"`
	PostsPerPage          int    `json:"board_posts_per_page"`
	RepliesPerPage        int    `json:"post_replies_per_page"`
	DefaultDescription    string `json:"user_description_default"`
	DefaultAbout          string `json:"user_about_default"`
	DefaultProfilePicture string `json:"user_profile_picture_default"`
}

// Public contains configurations exposable through public availability
// APIs
type Public struct {
	Captcha         bool   `json:"captcha"`
	Name            string `json:"name"`
	Title           string `json:"title"`
	WelcomeHeader   string `json:"welcome_header"`
	WelcomeBody     string `json:"welcome_body"`
	SupportEmail    string `json:"support_email"`
	SupportDiscord  string `json:"support_discord"`
	CaptchaSiteKey  string `json:"captcha_site_key"`
	UserColour      string `json:"board_user_role_colour"`
	ModeratorColour string `json:"board_moderator_role_colour"`
	AdminColour     string `json:"board_admin_role_colour"`
}

// Get returns a pointer to the current server configuration struct.
// Callers should not modify this struct.
func Get() *Configs {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Set sets the internal configuration struct and regenerates the public
// client JSON
func Set(c Configs) error {
	client, err := json.Marshal(c.Public)
	if err != nil {
		return err
	}
	h := util.HashBuffer(client)

	mu.Lock()
	clientJSON = client
	global = &c
	hash = h
	mu.Unlock()

	return nil
}

// GetClient returns public availability configuration JSON and a
// truncated configuration MD5 hash
func GetClient() ([]byte, string) {
	mu.RLock()
	defer mu.RUnlock()
	return clientJSON, hash
}

// SetClient sets the client configuration JSON and hash. To be used only
// in tests.
func SetClient(json []byte, cHash string) {
	mu.Lock()
	clientJSON = json
	hash = cHash
	mu.Unlock()
}

// Clear resets package state. Only use in tests.
func Clear() {
	mu.Lock()
	defer mu.Unlock()

	global = &Configs{}
	clientJSON = nil
	hash = ""
}
