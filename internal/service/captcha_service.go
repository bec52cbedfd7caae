package service

import (
	"strings"
	"sync"
	"time"

	"github.com/jagoron-news/internal/config"
	"github.com/jagoron-news/internal/constants"

	"github.com/mojocn/base64Captcha"
)

const captchaCharset = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// CaptchaVerifyPayload captcha answer sent with a protected request
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge image captcha challenge
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService image captcha for anonymous writes
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService creates the captcha service
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: normalizeCaptchaConfig(cfg)}
}

// Enabled reports whether scene requires a captcha
func (s *CaptchaService) Enabled(scene string) bool {
	if s == nil || !s.cfg.Enabled {
		return false
	}
	return scene == constants.CaptchaSceneReview
}

// GenerateImageChallenge generates a new image challenge
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	driver := base64Captcha.NewDriverString(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		s.cfg.Length,
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.imageStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify checks the answer for scene; an answer is consumed on first use
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.Enabled(scene) {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.imageStore().Verify(captchaID, strings.ToLower(captchaCode), true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) imageStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		s.store = newCaseInsensitiveStore(s.cfg.MaxStore, time.Duration(s.cfg.ExpireSeconds)*time.Second)
	}
	return s.store
}

// caseInsensitiveStore stores answers lowercased so readers need not match case
type caseInsensitiveStore struct {
	base64Captcha.Store
}

func newCaseInsensitiveStore(maxStore int, expire time.Duration) base64Captcha.Store {
	return caseInsensitiveStore{Store: base64Captcha.NewMemoryStore(maxStore, expire)}
}

func (s caseInsensitiveStore) Set(id string, value string) error {
	return s.Store.Set(id, strings.ToLower(value))
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	if cfg.Length < 4 || cfg.Length > 8 {
		cfg.Length = 5
	}
	if cfg.Width < 100 || cfg.Width > 480 {
		cfg.Width = 240
	}
	if cfg.Height < 40 || cfg.Height > 160 {
		cfg.Height = 80
	}
	if cfg.NoiseCount < 0 {
		cfg.NoiseCount = 0
	}
	if cfg.ShowLine < 0 {
		cfg.ShowLine = 0
	}
	if cfg.ExpireSeconds < 30 {
		cfg.ExpireSeconds = 300
	}
	if cfg.MaxStore <= 0 {
		cfg.MaxStore = 10240
	}
	return cfg
}
