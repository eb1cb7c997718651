package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rthearn/ivory/common"
	"github.com/rthearn/ivory/config"
)

func setCaptchaConfig(t *testing.T, enabled bool) {
	t.Helper()
	conf := config.Defaults
	conf.Captcha = enabled
	conf.CaptchaSecret = "secret"
	if err := config.Set(conf); err != nil {
		t.Fatal(err)
	}
}

func TestCaptchaDisabled(t *testing.T) {
	setCaptchaConfig(t, false)
	if err := VerifyCaptcha(""); err != nil {
		t.Fatal(err)
	}
}

func TestCaptchaVerdicts(t *testing.T) {
	setCaptchaConfig(t, true)

	cases := [...]struct {
		name, body string
		err        error
	}{
		{"pass", `{"success":true}`, nil},
		{"fail", `{"success":false}`, common.ErrInvalidCaptcha},
	}

	for i := range cases {
		c := cases[i]
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte(c.body))
				}))
			defer srv.Close()
			captchaVerifyURL = srv.URL
			defer func() {
				captchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
			}()

			if err := VerifyCaptcha("resp"); err != c.err {
				t.Fatalf("unexpected error: %#v", err)
			}
		})
	}
}

func TestCaptchaEmptyResponse(t *testing.T) {
	setCaptchaConfig(t, true)
	if err := VerifyCaptcha(""); err != common.ErrInvalidCaptcha {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestCaptchaUpstreamUnavailable(t *testing.T) {
	setCaptchaConfig(t, true)

	captchaVerifyURL = "http://127.0.0.1:1"
	defer func() {
		captchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	}()

	err := VerifyCaptcha("resp")
	se, ok := err.(common.StatusError)
	if !ok || se.Code != 502 {
		t.Fatalf("unexpected error: %#v", err)
	}
}
