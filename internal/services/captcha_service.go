package services

import (
	"github.com/dchest/captcha"
)

// CaptchaService wraps the image captcha shown on the discussion forms.
// The library keeps the id -> digits correlation in its own store; the
// handler only carries the id through the form.
type CaptchaService struct{}

func NewCaptchaService() *CaptchaService {
	return &CaptchaService{}
}

// New returns a fresh captcha id. The matching image is served by the
// captcha image handler under /captcha/<id>.png.
func (s *CaptchaService) New() string {
	return captcha.New()
}

// Verify checks the visitor's solution. A captcha is single-use: the
// id is invalidated by the check whatever the outcome.
func (s *CaptchaService) Verify(id, solution string) bool {
	if id == "" || solution == "" {
		return false
	}
	return captcha.VerifyString(id, solution)
}
