package service

import (
	"github.com/stroyprombeton/internal/config"
)

// PublicConfig 前台可见的站点配置
type PublicConfig struct {
	Name                   string   `json:"name"`
	BaseURL                string   `json:"base_url"`
	Email                  string   `json:"email"`
	Phones                 []string `json:"phones"`
	Address                string   `json:"address"`
	CaptchaRequired        bool     `json:"captcha_required"`
	PageSizes              []int    `json:"page_sizes"`
	PriceRequestActivities []string `json:"price_request_activities"`
}

// SiteService 站点配置服务
type SiteService struct {
	site    config.SiteConfig
	catalog config.CatalogConfig
	captcha *CaptchaService
}

// NewSiteService 创建站点配置服务
func NewSiteService(site config.SiteConfig, catalogCfg config.CatalogConfig, captcha *CaptchaService) *SiteService {
	return &SiteService{site: site, catalog: catalogCfg, captcha: captcha}
}

// PublicConfig 获取公开配置
func (s *SiteService) PublicConfig() PublicConfig {
	phones := s.site.Phones
	if phones == nil {
		phones = []string{}
	}
	return PublicConfig{
		Name:                   s.site.Name,
		BaseURL:                s.site.BaseURL,
		Email:                  s.site.Email,
		Phones:                 phones,
		Address:                s.site.Address,
		CaptchaRequired:        s.captcha.Enabled(),
		PageSizes:              append([]int{}, s.catalog.StepMultipliers...),
		PriceRequestActivities: append([]string{}, PriceRequestActivities...),
	}
}
