package service

import (
	"strings"
	"time"

	"github.com/stroyprombeton/internal/config"

	"github.com/mojocn/base64Captcha"
)

const captchaSource = "0123456789"

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务，挑战保存在进程内存中
type CaptchaService struct {
	cfg     config.CaptchaConfig
	store   base64Captcha.Store
	enabled bool
}

// NewCaptchaService 创建验证码服务；enabled 为 false 时 Verify 总是通过
func NewCaptchaService(cfg config.CaptchaConfig, enabled bool) *CaptchaService {
	cfg.Length = positiveOr(cfg.Length, 5)
	cfg.Width = positiveOr(cfg.Width, 240)
	cfg.Height = positiveOr(cfg.Height, 80)
	cfg.ExpireSeconds = positiveOr(cfg.ExpireSeconds, 300)
	cfg.MaxStore = positiveOr(cfg.MaxStore, 10240)
	return &CaptchaService{
		cfg:     cfg,
		store:   base64Captcha.NewMemoryStore(cfg.MaxStore, time.Duration(cfg.ExpireSeconds)*time.Second),
		enabled: enabled,
	}
}

// Enabled 是否要求验证码
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.enabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	driver := base64Captcha.NewDriverString(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		s.cfg.Length,
		captchaSource,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	id, b64s, _, err := base64Captcha.NewCaptcha(driver, s.store).Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 校验并消费验证码
func (s *CaptchaService) Verify(id, code string) error {
	if !s.Enabled() {
		return nil
	}
	id, code = strings.TrimSpace(id), strings.TrimSpace(code)
	if id == "" || code == "" {
		return ErrCaptchaInvalid
	}
	if !s.store.Verify(id, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

// Store 返回底层存储，便于测试读取答案
func (s *CaptchaService) Store() base64Captcha.Store {
	return s.store
}
