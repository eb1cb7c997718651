package auth

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/config"
)

// Overridable for tests
var captchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// VerifyCaptcha validates a client-supplied captcha response against the
// remote verification service. Returns nil, if captchas are disabled in
// the configuration. Must not be called while holding any collection
// lock.
func VerifyCaptcha(response string) error {
	conf := config.Get()
	if !conf.Captcha {
		return nil
	}
	if response == "" {
		return common.ErrInvalidCaptcha
	}

	res, err := http.PostForm(captchaVerifyURL, url.Values{
		"secret":   {conf.CaptchaSecret},
		"response": {response},
	})
	if err != nil {
		return common.ErrUpstream(err)
	}
	defer res.Body.Close()

	var verdict struct {
		Success bool `json:"success"`
	}
	err = json.NewDecoder(res.Body).Decode(&verdict)
	if err != nil {
		return common.ErrUpstream(err)
	}
	if !verdict.Success {
		return common.ErrInvalidCaptcha
	}
	return nil
}
